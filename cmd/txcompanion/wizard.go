package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/txcompanion/internal/hooks"
	"github.com/mark3labs/txcompanion/internal/library"
	"github.com/mark3labs/txcompanion/internal/model"
	"github.com/mark3labs/txcompanion/internal/radio"
	tuiwizard "github.com/mark3labs/txcompanion/internal/tui/wizard"
	"github.com/mark3labs/txcompanion/internal/wizard"
	"github.com/mark3labs/txcompanion/internal/wizard/script"
	"github.com/spf13/cobra"
)

var wizardFlags struct {
	radio       string
	model       string
	category    string
	slot        int
	answers     string
	saveAnswers string
	dryRun      bool
	yes         bool
}

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Create a model with the step-by-step wizard",
	Long: `Walk through the model wizard: pick the model type, assign receiver
channels to each control and let the wizard write the mixes.

With --answers the wizard runs unattended from an answers file. The result
is stored in the model library unless --dry-run is given. Pass --model to
rebuild an existing library model; the new mixes replace the old ones.`,
	RunE: runWizard,
}

func init() {
	wizardCmd.Flags().StringVarP(&wizardFlags.radio, "radio", "r", "", "Board id (default: configured radio)")
	wizardCmd.Flags().StringVarP(&wizardFlags.model, "model", "m", "", "Rebuild this library model (id, id prefix or name)")
	wizardCmd.Flags().StringVarP(&wizardFlags.category, "category", "c", "", "Category for a new model")
	wizardCmd.Flags().IntVar(&wizardFlags.slot, "slot", 0, "Model slot for a new model")
	wizardCmd.Flags().StringVarP(&wizardFlags.answers, "answers", "a", "", "Run unattended from this answers file")
	wizardCmd.Flags().StringVar(&wizardFlags.saveAnswers, "save-answers", "", "Write the answers of an interactive run to this file")
	wizardCmd.Flags().BoolVar(&wizardFlags.dryRun, "dry-run", false, "Print the result without storing it")
	wizardCmd.Flags().BoolVarP(&wizardFlags.yes, "yes", "y", false, "Replace an existing model without asking")
}

func runWizard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, cleanup, err := openLibrary(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	var answers *script.Answers
	if wizardFlags.answers != "" {
		if answers, err = script.Load(wizardFlags.answers); err != nil {
			return err
		}
	}

	radioID := wizardFlags.radio
	if radioID == "" && answers != nil {
		radioID = answers.Radio
	}
	b, err := boardFor(radioID)
	if err != nil {
		return err
	}

	original := model.Configuration{Category: wizardFlags.category, Slot: wizardFlags.slot}
	if answers != nil {
		original = answers.Original()
	}
	var previous *model.Configuration
	if wizardFlags.model != "" {
		e, err := store.Get(ctx, b.ID, wizardFlags.model)
		if err != nil {
			return err
		}
		previous = e.Model
		original = *e.Model
	}

	session := wizard.NewSession(b, cfg, original)
	var result *model.Configuration
	if answers != nil {
		res, err := script.Run(session, answers)
		if err != nil {
			return err
		}
		for _, name := range res.Unused {
			fmt.Fprintf(os.Stderr, "Warning: answers for page %q were not used\n", name)
		}
		result = res.Config
	} else {
		w := wizard.New(session)
		if err := tuiwizard.Run(w); err != nil {
			if errors.Is(err, tuiwizard.ErrCancelled) {
				fmt.Println("Wizard cancelled, nothing saved.")
				return nil
			}
			return err
		}
		if wizardFlags.saveAnswers != "" {
			if err := writeAnswers(w, wizardFlags.saveAnswers); err != nil {
				return err
			}
		}
		if result, err = wizard.Assemble(session); err != nil {
			return err
		}
	}

	fmt.Println(wizard.Summary(session))

	if previous == nil {
		if previous, err = store.Adopt(ctx, result); err != nil {
			return err
		}
	}

	out, err := library.Export(result)
	if err != nil {
		return err
	}
	if previous != nil {
		old, err := library.Export(previous)
		if err != nil {
			return err
		}
		if diff := renderDiff("stored", "wizard", string(old), string(out)); diff != "" {
			fmt.Println(diff)
		}
	}

	if wizardFlags.dryRun {
		fmt.Println(highlightYAML(string(out)))
		return nil
	}
	if previous != nil && !wizardFlags.yes && !confirm(fmt.Sprintf("Replace %q on %s?", previous.Name, b.ID)) {
		fmt.Println("Nothing saved.")
		return nil
	}

	saved, err := store.Save(ctx, result)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %q as %s\n", saved.Name, saved.ID)

	return runHooks(ctx, postModelSave, hooks.Variables{Model: saved.Name, Radio: saved.Radio})
}

func writeAnswers(w *wizard.Wizard, path string) error {
	data, err := script.Record(w).Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write answers: %w", err)
	}
	fmt.Printf("Answers written to %s\n", path)
	return nil
}

// confirm asks a yes/no question on stdin. Anything but y/yes declines.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	var reply string
	if _, err := fmt.Scanln(&reply); err != nil {
		return false
	}
	return reply == "y" || reply == "Y" || reply == "yes"
}

var radiosCmd = &cobra.Command{
	Use:   "radios",
	Short: "List the supported transmitter boards",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := themeStyles()
		for _, b := range radio.Boards() {
			marker := "  "
			if b.ID == cfg.Radio {
				marker = s.Success.Render("* ")
			}
			fmt.Printf("%s%-10s %-28s %s\n", marker, b.ID, b.Name, s.Muted.Render("sd: "+b.Family))
		}
		return nil
	},
}
