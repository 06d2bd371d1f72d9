package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dvega-dev/bibliago/internal/domain"
	"github.com/dvega-dev/bibliago/internal/utils"
)

var readCmd = &cobra.Command{
	Use:   "read <book> <chapter>",
	Short: "Read a chapter (local store first, network on miss)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		chapter, err := strconv.Atoi(args[1])
		if err != nil || chapter < 1 {
			return fmt.Errorf("invalid chapter number: %s", args[1])
		}
		version, _ := cmd.Flags().GetString("bible-version")

		appCtx, err := buildApp()
		if err != nil {
			return err
		}
		defer appCtx.close()

		ctx, cancel := signalContext()
		defer cancel()

		content, err := appCtx.orch.LoadChapter(ctx, version, args[0], chapter)
		if err != nil {
			return err
		}

		if len(content) == 0 {
			fmt.Println("(no content available for this chapter)")
			return nil
		}
		for _, rec := range content {
			if rec.IsVerse() {
				fmt.Printf("%d. %s\n", rec.Number, rec.Text)
			} else {
				fmt.Printf("\n%s\n", rec.Text)
			}
		}
		return nil
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download <version>",
	Short: "Make a translation available offline",
	Long: `Marks the translation for offline caching and fetches every chapter
of every catalog book that is not already stored. Interrupted downloads
resume where they left off; failed chapters are reported but do not stop
the rest.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noProgress, _ := cmd.Flags().GetBool("no-progress")

		appCtx, err := buildApp()
		if err != nil {
			return err
		}
		defer appCtx.close()

		ctx, cancel := signalContext()
		defer cancel()

		var onProgress func(done, total int)
		if !noProgress {
			books, err := appCtx.orch.Books(ctx)
			if err != nil {
				return err
			}
			total := 0
			for _, b := range books {
				total += b.Chapters
			}
			bar := utils.NewProgressBar(total, utils.DescDownloading)
			onProgress = func(done, total int) {
				_ = bar.Add(1)
			}
			defer bar.Finish()
		}

		results, err := appCtx.orch.DownloadVersion(ctx, args[0], onProgress)
		if err != nil {
			return err
		}

		skipped, failed := 0, 0
		for _, r := range results {
			if r.Skipped {
				skipped++
			}
			if r.Err != nil {
				failed++
				appCtx.logger.Warn().
					Str("book", r.Book).
					Int("chapter", r.Chapter).
					Err(r.Err).
					Msg("Chapter not downloaded")
			}
		}

		fmt.Printf("\n%s: %d chapters attempted, %d already stored, %d failed\n",
			args[0], len(results), skipped, failed)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <version>",
	Short: "Remove a translation from the local store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := buildApp()
		if err != nil {
			return err
		}
		defer appCtx.close()

		ctx, cancel := signalContext()
		defer cancel()

		if err := appCtx.orch.DeleteVersion(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("%s removed from local store\n", args[0])
		return nil
	},
}

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List available translations",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := buildApp()
		if err != nil {
			return err
		}
		defer appCtx.close()

		ctx, cancel := signalContext()
		defer cancel()

		versions, err := appCtx.orch.Versions(ctx)
		if err != nil {
			return err
		}
		for _, v := range versions {
			marker := " "
			if appCtx.orch.IsVersionMarked(ctx, v.Abbreviation) {
				marker = "*"
			}
			fmt.Printf("%s %-10s %s\n", marker, v.Abbreviation, v.Name)
		}
		return nil
	},
}

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List catalog books with chapter counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := buildApp()
		if err != nil {
			return err
		}
		defer appCtx.close()

		ctx, cancel := signalContext()
		defer cancel()

		books, err := appCtx.orch.Books(ctx)
		if err != nil {
			return err
		}
		for _, b := range books {
			fmt.Printf("%-20s %3d chapters  (%s)\n", b.Name, b.Chapters, b.Testament)
		}
		return nil
	},
}

var highlightCmd = &cobra.Command{
	Use:   "highlight",
	Short: "Manage verse highlights",
}

// parseVerseRef parses "Juan 3:16" style arguments joined by spaces
func parseVerseRef(args []string) (book string, chapter, verse int, err error) {
	ref := strings.Join(args, " ")
	idx := strings.LastIndex(ref, " ")
	if idx < 0 {
		return "", 0, 0, fmt.Errorf("expected <book> <chapter>:<verse>, got %q", ref)
	}
	book = ref[:idx]
	parts := strings.SplitN(ref[idx+1:], ":", 2)
	if len(parts) != 2 {
		return "", 0, 0, fmt.Errorf("expected <chapter>:<verse>, got %q", ref[idx+1:])
	}
	chapter, err = strconv.Atoi(parts[0])
	if err != nil || chapter < 1 {
		return "", 0, 0, fmt.Errorf("invalid chapter in %q", ref)
	}
	verse, err = strconv.Atoi(parts[1])
	if err != nil || verse < 1 {
		return "", 0, 0, fmt.Errorf("invalid verse in %q", ref)
	}
	return book, chapter, verse, nil
}

var highlightAddCmd = &cobra.Command{
	Use:   "add <book> <chapter>:<verse>",
	Short: "Highlight a verse",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		book, chapter, verse, err := parseVerseRef(args)
		if err != nil {
			return err
		}
		version, _ := cmd.Flags().GetString("bible-version")
		color, _ := cmd.Flags().GetString("color")
		text, _ := cmd.Flags().GetString("text")

		appCtx, err := buildApp()
		if err != nil {
			return err
		}
		defer appCtx.close()

		ctx, cancel := signalContext()
		defer cancel()

		// Snapshot the verse text when the caller did not supply one
		if text == "" {
			if content, err := appCtx.orch.LoadChapter(ctx, version, book, chapter); err == nil {
				text, _ = content.VerseText(verse)
			}
		}

		rec, err := appCtx.orch.SaveHighlight(ctx, domain.HighlightInput{
			Version: version,
			Book:    book,
			Chapter: chapter,
			Verse:   verse,
			Text:    text,
			Color:   color,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Highlighted %s %d:%d (%s) in %s\n", rec.Book, rec.Chapter, rec.Verse, rec.Color, rec.Version)
		return nil
	},
}

var highlightRmCmd = &cobra.Command{
	Use:   "rm <book> <chapter>:<verse>",
	Short: "Remove a highlight",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		book, chapter, verse, err := parseVerseRef(args)
		if err != nil {
			return err
		}
		version, _ := cmd.Flags().GetString("bible-version")

		appCtx, err := buildApp()
		if err != nil {
			return err
		}
		defer appCtx.close()

		ctx, cancel := signalContext()
		defer cancel()

		if err := appCtx.orch.RemoveHighlight(ctx, version, book, chapter, verse); err != nil {
			return err
		}
		fmt.Printf("Removed highlight on %s %d:%d in %s\n", book, chapter, verse, version)
		return nil
	},
}

var highlightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List highlights",
	RunE: func(cmd *cobra.Command, args []string) error {
		book, _ := cmd.Flags().GetString("book")

		appCtx, err := buildApp()
		if err != nil {
			return err
		}
		defer appCtx.close()

		ctx, cancel := signalContext()
		defer cancel()

		var highlights []domain.Highlight
		if book != "" {
			highlights, err = appCtx.orch.GetHighlightsForBook(ctx, book)
		} else {
			highlights, err = appCtx.orch.GetAllHighlights(ctx)
		}
		if err != nil {
			return err
		}

		if len(highlights) == 0 {
			fmt.Println("No highlights stored")
			return nil
		}
		for _, h := range highlights {
			fmt.Printf("%s %d:%d (%s) %s  %s\n", h.Book, h.Chapter, h.Verse, h.Version, h.Color, h.Text)
		}
		return nil
	},
}
