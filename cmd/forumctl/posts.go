package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/Gravitalia/forum/client"
	"github.com/Gravitalia/forum/model"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	page     int
	limit    int
	filter   string
	original bool

	title        string
	content      string
	postLanguage string
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List posts, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := timeout()
		defer cancel()

		list, err := api.ListPosts(ctx, model.PostQuery{Page: page, Limit: limit, Language: filter})
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Title", "Author", "Language", "Likes", "Replies", "Date"})
		for _, post := range list.Posts {
			table.Append([]string{
				post.Id,
				show(ctx, post.Title, post.Language),
				post.Author,
				post.Language,
				strconv.FormatInt(post.Likes, 10),
				strconv.Itoa(len(post.Replies)),
				post.Timestamp,
			})
		}
		table.Render()

		p := list.Pagination
		fmt.Printf("Page %d of %d, %d posts\n", p.CurrentPage, p.TotalPages, p.TotalPosts)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a post and its replies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := timeout()
		defer cancel()

		post, err := api.GetPost(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Println(color.New(color.Bold, color.FgHiCyan).Sprint(show(ctx, post.Title, post.Language)))
		fmt.Printf("by %s in %s, %s, %d likes\n\n", post.Author, post.Language, post.Timestamp, post.Likes)
		fmt.Println(show(ctx, post.Content, post.Language))

		if len(post.Replies) > 0 {
			fmt.Println()
			fmt.Println(color.New(color.Bold).Sprintf("Replies (%d)", len(post.Replies)))
		}
		for _, reply := range post.Replies {
			fmt.Printf("\n%s, %s\n%s\n", color.New(color.FgHiGreen).Sprint(reply.Author), reply.Timestamp, show(ctx, reply.Content, reply.Language))
		}
		return nil
	},
}

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Create a post",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := timeout()
		defer cancel()

		post, err := api.CreatePost(ctx, model.PostBody{
			Title:    title,
			Content:  content,
			Author:   author(),
			Language: writerLanguage(),
		})
		if err != nil {
			return err
		}

		success("Post %s created", post.Id)
		return nil
	},
}

var replyCmd = &cobra.Command{
	Use:   "reply <id> <content>",
	Short: "Reply to a post",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := timeout()
		defer cancel()

		if _, err := api.Reply(ctx, args[0], model.ReplyBody{
			Content:  args[1],
			Author:   author(),
			Language: writerLanguage(),
		}); err != nil {
			return err
		}

		success("Reply added")
		return nil
	},
}

var likeCmd = &cobra.Command{
	Use:   "like <id>",
	Short: "Like a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return like(args[0], "like")
	},
}

var unlikeCmd = &cobra.Command{
	Use:   "unlike <id>",
	Short: "Remove a like from a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return like(args[0], "unlike")
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := timeout()
		defer cancel()

		if err := api.DeletePost(ctx, args[0]); err != nil {
			return err
		}

		success("Post deleted successfully")
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the forum",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := timeout()
		defer cancel()

		stats, err := api.Stats(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Posts: %d  Replies: %d  Likes: %d  Languages: %d\n\n", stats.TotalPosts, stats.TotalReplies, stats.TotalLikes, stats.LanguagesUsed)

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Title", "Author", "Date"})
		for _, activity := range stats.RecentActivity {
			table.Append([]string{activity.Id, activity.Title, activity.Author, activity.Timestamp})
		}
		table.Render()
		return nil
	},
}

func init() {
	postsCmd.Flags().IntVar(&page, "page", 1, "page to show")
	postsCmd.Flags().IntVar(&limit, "limit", 10, "posts per page")
	postsCmd.Flags().StringVar(&filter, "language", "", "only list posts written in this language")

	for _, cmd := range []*cobra.Command{postsCmd, showCmd} {
		cmd.Flags().BoolVar(&original, "original", false, "show original texts")
	}

	postCmd.Flags().StringVarP(&title, "title", "t", "", "title of the post")
	postCmd.Flags().StringVarP(&content, "content", "c", "", "content of the post")
	_ = postCmd.MarkFlagRequired("title")
	_ = postCmd.MarkFlagRequired("content")

	for _, cmd := range []*cobra.Command{postCmd, replyCmd} {
		cmd.Flags().StringVar(&postLanguage, "written-in", "", "language of the text (default: preferred language)")
	}

	RootCmd.AddCommand(postsCmd, showCmd, postCmd, replyCmd, likeCmd, unlikeCmd, deleteCmd, statsCmd)
}

func like(id string, action string) error {
	ctx, cancel := timeout()
	defer cancel()

	likes, err := api.Like(ctx, id, action)
	if err != nil {
		return err
	}

	fmt.Printf("Post %s has %s likes\n", id, color.New(color.Bold, color.FgHiCyan).Sprint(likes))
	return nil
}

// show translates one text into the reader language,
// the original is printed when translation fails
func show(ctx context.Context, text string, source string) string {
	fragment := client.NewFragment(api, text, source, readerLanguage())
	fragment.Load(ctx)
	if err := fragment.Err(); err != nil {
		warn("Translation failed, showing original: %v", err)
	}

	if original && !fragment.ShowingOriginal() {
		fragment.Toggle()
	}
	return fragment.Text()
}

func author() string {
	if session.User.Username != "" {
		return session.User.Username
	}
	return "Anonymous"
}

func writerLanguage() string {
	if postLanguage != "" {
		return postLanguage
	}
	return readerLanguage()
}
