package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/Gravitalia/forum/model"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	from    string
	to      string
	service string
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := timeout()
		defer cancel()

		languages, err := api.Languages(ctx)
		if err != nil {
			return err
		}

		codes := make([]string, 0, len(languages))
		for code := range languages {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Code", "Language"})
		for _, code := range codes {
			table.Append([]string{code, languages[code]})
		}
		table.Render()
		return nil
	},
}

var translateCmd = &cobra.Command{
	Use:   "translate <text>",
	Short: "Translate a text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := timeout()
		defer cancel()

		target := to
		if target == "" {
			target = readerLanguage()
		}

		result, err := api.Translate(ctx, model.TranslationBody{
			Text:       args[0],
			SourceLang: from,
			TargetLang: target,
			Service:    service,
		})
		if err != nil {
			return err
		}

		fmt.Println(result.TranslatedText)
		fmt.Fprintln(os.Stderr, color.New(color.FgHiBlack).Sprintf("service: %s, detected: %s", result.Service, result.DetectedLanguage))
		return nil
	},
}

func init() {
	translateCmd.Flags().StringVar(&from, "from", "", "source language (default: auto)")
	translateCmd.Flags().StringVar(&to, "to", "", "target language (default: reader language)")
	translateCmd.Flags().StringVar(&service, "service", "", "preferred provider: openai, azure, google, deepl or local")

	RootCmd.AddCommand(languagesCmd, translateCmd)
}
