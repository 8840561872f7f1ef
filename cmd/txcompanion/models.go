package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/txcompanion/internal/hooks"
	"github.com/mark3labs/txcompanion/internal/library"
	"github.com/mark3labs/txcompanion/internal/model"
	"github.com/spf13/cobra"
)

var modelsFlags struct {
	radio string
	out   string
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Manage the model library",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored models",
	Args:  cobra.NoArgs,
	RunE:  runModelsList,
}

var modelsShowCmd = &cobra.Command{
	Use:   "show <model>",
	Short: "Print a stored model as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsShow,
}

var modelsExportCmd = &cobra.Command{
	Use:   "export <model>",
	Short: "Write a stored model to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsExport,
}

var modelsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store a model from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsImport,
}

var modelsEditCmd = &cobra.Command{
	Use:   "edit <model>",
	Short: "Edit a stored model in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsEdit,
}

var modelsDeleteCmd = &cobra.Command{
	Use:   "delete <model>",
	Short: "Remove a model from the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsDelete,
}

func init() {
	modelsCmd.PersistentFlags().StringVarP(&modelsFlags.radio, "radio", "r", "", "Board id (default: configured radio)")
	modelsExportCmd.Flags().StringVarP(&modelsFlags.out, "out", "o", "", "Output file (default: <model-name>.yml)")

	modelsCmd.AddCommand(modelsListCmd, modelsShowCmd, modelsExportCmd, modelsImportCmd, modelsEditCmd, modelsDeleteCmd)
}

func runModelsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	b, err := boardFor(modelsFlags.radio)
	if err != nil {
		return err
	}
	store, cleanup, err := openLibrary(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	models, err := store.List(ctx, b.ID)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		fmt.Printf("No models stored for %s. Run 'txcompanion wizard' to create one.\n", b.ID)
		return nil
	}

	s := themeStyles()
	fmt.Println(s.HeaderTitle.Render(fmt.Sprintf("%s (%d models)", b.Name, len(models))))
	for _, m := range models {
		category := m.Category
		if category == "" {
			category = "-"
		}
		fmt.Printf("%s  %-15s %-12s slot %-3d %-16s %s\n",
			s.Muted.Render(m.ID[:min(8, len(m.ID))]), m.Name, category, m.Slot, m.Vehicle.Label(),
			s.Muted.Render(fmt.Sprintf("%d mixes on %d channels", len(m.Mixes), len(m.Channels()))))
	}
	return nil
}

// loadEntry opens the library and resolves one model reference.
func loadEntry(cmd *cobra.Command, ref string) (*library.Store, *library.Entry, func(), error) {
	ctx := cmd.Context()
	b, err := boardFor(modelsFlags.radio)
	if err != nil {
		return nil, nil, nil, err
	}
	store, cleanup, err := openLibrary(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	e, err := store.Get(ctx, b.ID, ref)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	return store, e, cleanup, nil
}

func runModelsShow(cmd *cobra.Command, args []string) error {
	_, e, cleanup, err := loadEntry(cmd, args[0])
	if err != nil {
		return err
	}
	defer cleanup()

	out, err := library.Export(e.Model)
	if err != nil {
		return err
	}
	fmt.Println(themeStyles().Muted.Render(fmt.Sprintf("# revision %d, updated %s", e.Revision, e.UpdatedAt.Local().Format("2006-01-02 15:04"))))
	fmt.Println(highlightYAML(string(out)))
	return nil
}

func runModelsExport(cmd *cobra.Command, args []string) error {
	_, e, cleanup, err := loadEntry(cmd, args[0])
	if err != nil {
		return err
	}
	defer cleanup()

	out, err := library.Export(e.Model)
	if err != nil {
		return err
	}
	path := modelsFlags.out
	if path == "" {
		path = library.FileName(e.Model)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Exported %q to %s\n", e.Model.Name, path)
	return nil
}

func runModelsImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	m, err := library.Import(data)
	if err != nil {
		return err
	}
	if modelsFlags.radio != "" {
		m.Radio = modelsFlags.radio
	}
	if m.Radio == "" {
		m.Radio = cfg.Radio
	}
	if _, err := boardFor(m.Radio); err != nil {
		return err
	}

	store, cleanup, err := openLibrary(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	return saveModel(cmd, store, m, args[0])
}

func runModelsEdit(cmd *cobra.Command, args []string) error {
	store, e, cleanup, err := loadEntry(cmd, args[0])
	if err != nil {
		return err
	}
	defer cleanup()

	before, err := library.Export(e.Model)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp("", "txcompanion-*.yml")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(before); err != nil {
		_ = tmp.Close()
		return err
	}
	_ = tmp.Close()

	c, err := editor.Command("txcompanion", tmp.Name())
	if err != nil {
		return fmt.Errorf("failed to start editor: %w", err)
	}
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	after, err := os.ReadFile(tmp.Name())
	if err != nil {
		return err
	}
	diff := renderDiff("stored", "edited", string(before), string(after))
	if diff == "" {
		fmt.Println("No changes.")
		return nil
	}
	fmt.Println(diff)

	m, err := library.Import(after)
	if err != nil {
		return fmt.Errorf("edited model rejected: %w", err)
	}
	// identity is not editable
	m.ID, m.Radio, m.CreatedAt = e.Model.ID, e.Model.Radio, e.Model.CreatedAt
	return saveModel(cmd, store, m, "")
}

// saveModel stores m and runs the post_model_save hooks. file names the
// YAML the model came from, if any.
func saveModel(cmd *cobra.Command, store *library.Store, m *model.Configuration, file string) error {
	saved, err := store.Save(cmd.Context(), m)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %q as %s\n", saved.Name, saved.ID)
	if file != "" {
		file = filepath.Clean(file)
	}
	return runHooks(cmd.Context(), postModelSave, hooks.Variables{Model: saved.Name, Radio: saved.Radio, File: file})
}

func runModelsDelete(cmd *cobra.Command, args []string) error {
	b, err := boardFor(modelsFlags.radio)
	if err != nil {
		return err
	}
	store, cleanup, err := openLibrary(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	m, err := store.Delete(cmd.Context(), b.ID, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %q (%s)\n", m.Name, m.ID)
	return nil
}
