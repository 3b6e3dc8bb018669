package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/commands/options"
	"tableflip.dev/tend/pkg/entry"
	"tableflip.dev/tend/pkg/runner/edit"
	"tableflip.dev/tend/pkg/store"
)

func addEdit(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	var (
		activity   string
		category   string
		mood       int
		tags       []string
		reflection string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a tracked entry. The time window itself cannot change.",
		Example: `
tend edit 171dff69f8b99dca --mood 5
tend edit 171dff69f8b99dca --activity "morning pages" --tags calm,focused
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires an entry id, find it with `tend day --show-id`")
			}
			io.ID = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			patch := entry.Patch{}
			if cmd.Flags().Changed("activity") {
				patch.Activity = &activity
			}
			if cmd.Flags().Changed("category") {
				patch.Category = &category
			}
			if cmd.Flags().Changed("mood") {
				patch.MoodRating = &mood
			}
			if cmd.Flags().Changed("tags") {
				patch.EmotionTags = tags
			}
			if cmd.Flags().Changed("reflect") {
				patch.Reflection = &reflection
			}

			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := edit.Edit{
				ID:          io.ID,
				Patch:       patch,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&activity, "activity", "", "Rename the activity.")
	cmd.Flags().StringVar(&category, "category", "", "Override the category.")
	cmd.Flags().IntVar(&mood, "mood", 0, "Mood rating from 1 (drained) to 6 (glowing).")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Replace the emotion tags.")
	cmd.Flags().StringVar(&reflection, "reflect", "", "Replace the reflection.")

	topLevel.AddCommand(cmd)
}
