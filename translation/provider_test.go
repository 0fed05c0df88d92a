package translation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gravitalia/forum/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helpersConfig() helpers.ProviderConfig {
	return helpers.ProviderConfig{LocalModelType: "server"}
}

func decode(t *testing.T, r *http.Request, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r.Body).Decode(v))
}

func TestOpenAI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]any
		decode(t, r, &body)
		assert.Equal(t, "gpt-3.5-turbo", body["model"])
		assert.EqualValues(t, 1000, body["max_tokens"])

		messages := body["messages"].([]any)
		require.Len(t, messages, 2)
		assert.Contains(t, messages[0].(map[string]any)["content"], "Translate the following text to fr.")
		assert.Equal(t, "Hello", messages[1].(map[string]any)["content"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":" Bonjour "}}]}`))
	}))
	defer server.Close()

	provider := NewOpenAI("sk-test", server.URL, "gpt-3.5-turbo", server.Client())
	translation, err := provider.Translate(context.Background(), Request{Text: "Hello", TargetLang: "fr"})
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", translation.TranslatedText)
	assert.Equal(t, "openai", translation.Service)
	assert.Equal(t, "unknown", translation.DetectedLanguage)
}

func TestOpenAINotConfigured(t *testing.T) {
	_, err := NewOpenAI("", "", "gpt-3.5-turbo", nil).Translate(context.Background(), Request{Text: "Hello", TargetLang: "fr"})
	assert.EqualError(t, err, "OpenAI API key not configured")
}

func TestAzure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3.0", r.URL.Query().Get("api-version"))
		assert.Equal(t, "es", r.URL.Query().Get("to"))
		assert.Empty(t, r.URL.Query().Get("from"))
		assert.Equal(t, "key", r.Header.Get("Ocp-Apim-Subscription-Key"))
		assert.Equal(t, "westeurope", r.Header.Get("Ocp-Apim-Subscription-Region"))

		var body []map[string]string
		decode(t, r, &body)
		assert.Equal(t, []map[string]string{{"text": "Hello"}}, body)

		_, _ = w.Write([]byte(`[{"detectedLanguage":{"language":"en","score":1.0},"translations":[{"text":"Hola","to":"es"}]}]`))
	}))
	defer server.Close()

	provider := &Azure{Key: "key", Region: "westeurope", URL: server.URL, Client: server.Client()}
	translation, err := provider.Translate(context.Background(), Request{Text: "Hello", TargetLang: "es"})
	require.NoError(t, err)
	assert.Equal(t, "Hola", translation.TranslatedText)
	assert.Equal(t, "azure", translation.Service)
	assert.Equal(t, "en", translation.DetectedLanguage)
}

func TestAzureUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":401000,"message":"invalid key"}}`))
	}))
	defer server.Close()

	provider := &Azure{Key: "bad", URL: server.URL, Client: server.Client()}
	_, err := provider.Translate(context.Background(), Request{Text: "Hello", TargetLang: "es"})
	assert.EqualError(t, err, "Azure translation failed: invalid key")
}

func TestGoogle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gkey", r.URL.Query().Get("key"))

		var body map[string]string
		decode(t, r, &body)
		assert.Equal(t, map[string]string{"q": "Hello", "target": "de", "source": "en"}, body)

		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"Hallo"}]}}`))
	}))
	defer server.Close()

	provider := &Google{Key: "gkey", URL: server.URL, Client: server.Client()}
	translation, err := provider.Translate(context.Background(), Request{Text: "Hello", TargetLang: "de", SourceLang: "en"})
	require.NoError(t, err)
	assert.Equal(t, "Hallo", translation.TranslatedText)
	assert.Equal(t, "google", translation.Service)
	assert.Equal(t, "en", translation.DetectedLanguage)
}

func TestDeepL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DeepL-Auth-Key dkey", r.Header.Get("Authorization"))

		var body deeplBody
		decode(t, r, &body)
		assert.Equal(t, deeplBody{Text: []string{"Hello"}, TargetLang: "JA"}, body)

		_, _ = w.Write([]byte(`{"translations":[{"detected_source_language":"EN","text":"こんにちは"}]}`))
	}))
	defer server.Close()

	provider := &DeepL{Key: "dkey", URL: server.URL, Client: server.Client()}
	translation, err := provider.Translate(context.Background(), Request{Text: "Hello", TargetLang: "ja"})
	require.NoError(t, err)
	assert.Equal(t, "こんにちは", translation.TranslatedText)
	assert.Equal(t, "deepl", translation.Service)
	assert.Equal(t, "en", translation.DetectedLanguage)
}

func TestMissingKeys(t *testing.T) {
	ctx := context.Background()
	req := Request{Text: "Hello", TargetLang: "fr"}

	_, err := (&Azure{}).Translate(ctx, req)
	assert.EqualError(t, err, "Azure Translator key not configured")
	_, err = (&Google{}).Translate(ctx, req)
	assert.EqualError(t, err, "Google Translate API key not configured")
	_, err = (&DeepL{}).Translate(ctx, req)
	assert.EqualError(t, err, "DeepL API key not configured")
	_, err = (&Local{Type: "server"}).Translate(ctx, req)
	assert.EqualError(t, err, "Local model server not configured")
}

func TestLocalServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate", r.URL.Path)

		var body localBody
		decode(t, r, &body)
		assert.Equal(t, localBody{Text: "Hello", SourceLang: "auto", TargetLang: "fr"}, body)

		_, _ = w.Write([]byte(`{"translated_text":"Bonjour","detected_language":"en"}`))
	}))
	defer server.Close()

	provider := &Local{Type: "server", ServerURL: server.URL + "/", Client: server.Client()}
	translation, err := provider.Translate(context.Background(), Request{Text: "Hello", TargetLang: "fr"})
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", translation.TranslatedText)
	assert.Equal(t, "local_server", translation.Service)
	assert.Equal(t, "en", translation.DetectedLanguage)
}

func TestLocalOllama(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var body ollamaBody
		decode(t, r, &body)
		assert.Equal(t, "llama3", body.Model)
		assert.False(t, body.Stream)
		assert.Equal(t, ollamaOptions{Temperature: 0.3, TopP: 0.9}, body.Options)
		assert.Contains(t, body.Prompt, "from en to fr")

		_, _ = w.Write([]byte(`{"response":"Bonjour\n","done":true}`))
	}))
	defer server.Close()

	provider := &Local{Type: "ollama", Model: "llama3", OllamaURL: server.URL, Client: server.Client()}
	translation, err := provider.Translate(context.Background(), Request{Text: "Hello", TargetLang: "fr", SourceLang: "en"})
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", translation.TranslatedText)
	assert.Equal(t, "local_ollama", translation.Service)
	assert.Equal(t, "en", translation.DetectedLanguage)
}

func TestUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	provider := &Local{ServerURL: server.URL, Client: server.Client()}
	_, err := provider.Translate(context.Background(), Request{Text: "Hello", TargetLang: "fr"})
	assert.EqualError(t, err, "Local model translation failed: unexpected status 502")
}

func TestRequestSource(t *testing.T) {
	assert.Empty(t, Request{SourceLang: "auto"}.Source())
	assert.Empty(t, Request{SourceLang: "AUTO"}.Source())
	assert.Empty(t, Request{}.Source())
	assert.Equal(t, "fr", Request{SourceLang: "fr"}.Source())
}

func TestAzureAutoSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, fromSet := r.URL.Query()["from"]
		assert.False(t, fromSet)

		_, _ = w.Write([]byte(`[{"translations":[{"text":"Hola","to":"es"}]}]`))
	}))
	defer server.Close()

	provider := &Azure{Key: "key", URL: server.URL, Client: server.Client()}
	translation, err := provider.Translate(context.Background(), Request{Text: "Hello", TargetLang: "es", SourceLang: "auto"})
	require.NoError(t, err)
	assert.Equal(t, "unknown", translation.DetectedLanguage)
}

func TestGoogleAutoSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		decode(t, r, &body)
		assert.NotContains(t, body, "source")

		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"Hallo"}]}}`))
	}))
	defer server.Close()

	provider := &Google{Key: "gkey", URL: server.URL, Client: server.Client()}
	translation, err := provider.Translate(context.Background(), Request{Text: "Hello", TargetLang: "de", SourceLang: "auto"})
	require.NoError(t, err)
	assert.Equal(t, "unknown", translation.DetectedLanguage)
}

func TestDeepLAutoSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		decode(t, r, &body)
		assert.NotContains(t, body, "source_lang")

		_, _ = w.Write([]byte(`{"translations":[{"text":"Bonjour"}]}`))
	}))
	defer server.Close()

	provider := &DeepL{Key: "dkey", URL: server.URL, Client: server.Client()}
	translation, err := provider.Translate(context.Background(), Request{Text: "Hello", TargetLang: "fr", SourceLang: "auto"})
	require.NoError(t, err)
	assert.Equal(t, "unknown", translation.DetectedLanguage)
}

func TestLocalAutoSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body ollamaBody
		decode(t, r, &body)
		assert.NotContains(t, body.Prompt, "from auto")

		_, _ = w.Write([]byte(`{"response":"Bonjour"}`))
	}))
	defer server.Close()

	provider := &Local{Type: "ollama", Model: "llama3", OllamaURL: server.URL, Client: server.Client()}
	translation, err := provider.Translate(context.Background(), Request{Text: "Hello", TargetLang: "fr", SourceLang: "auto"})
	require.NoError(t, err)
	assert.Equal(t, "unknown", translation.DetectedLanguage)
}
