package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ryder-MHumble/evolabeler-go/domain/annotation"
	"github.com/Ryder-MHumble/evolabeler-go/domain/codec"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labelconv",
		Short: "Convert annotation documents between export formats",
		Long: `Labelconv converts annotation documents produced by the EvoLabeler canvas.

It reads the structured JSON export and emits darknet-style YOLO text files,
and can print the class list derived from a vocabulary file.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newJSON2YOLOCmd())
	cmd.AddCommand(newClassesCmd())
	cmd.AddCommand(newInspectCmd())
	return cmd
}

func newJSON2YOLOCmd() *cobra.Command {
	var vocabPath string
	var outDir string

	cmd := &cobra.Command{
		Use:   "json2yolo <document.json>",
		Short: "Convert a JSON annotation document to YOLO text files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			doc, boxes, err := codec.DecodeJSON(data)
			if err != nil {
				return fmt.Errorf("decode document: %w", err)
			}
			vocab, err := codec.LoadVocabulary(vocabPath)
			if err != nil {
				slog.Warn("vocabulary load failed, using defaults", "path", vocabPath, "error", err)
			}

			logger := slog.Default()
			exporter := codec.NewExporter(logger, vocab, codec.DirSink{Dir: outDir})
			imageID := doc.ImageID
			if imageID == "" {
				imageID = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			names, err := exporter.ExportYOLO(imageID, boxes)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			for _, name := range names {
				fmt.Println(filepath.Join(outDir, name))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&vocabPath, "vocab", "labels.yaml", "Path to the label vocabulary YAML file")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory for the generated YOLO files")
	return cmd
}

func newClassesCmd() *cobra.Command {
	var vocabPath string

	cmd := &cobra.Command{
		Use:   "classes",
		Short: "Print the class list derived from a vocabulary file",
		RunE: func(cmd *cobra.Command, args []string) error {
			vocab, err := codec.LoadVocabulary(vocabPath)
			if err != nil {
				slog.Warn("vocabulary load failed, using defaults", "path", vocabPath, "error", err)
			}
			_, werr := cmd.OutOrStdout().Write(vocab.ClassesFile())
			return werr
		},
	}

	cmd.Flags().StringVar(&vocabPath, "vocab", "labels.yaml", "Path to the label vocabulary YAML file")
	return cmd
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <document.json>",
		Short: "Summarize a JSON annotation document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			doc, boxes, err := codec.DecodeJSON(data)
			if err != nil {
				return fmt.Errorf("decode document: %w", err)
			}
			confirmed := 0
			labels := map[string]int{}
			for _, b := range boxes {
				if b.Status == annotation.StatusConfirmed {
					confirmed++
				}
				labels[b.Label]++
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "image: %s (%dx%d)\n", doc.ImageID, doc.ImageWidth, doc.ImageHeight)
			fmt.Fprintf(out, "boxes: %d (%d confirmed, %d pending)\n", len(boxes), confirmed, len(boxes)-confirmed)
			for label, n := range labels {
				fmt.Fprintf(out, "  %s: %d\n", label, n)
			}
			return nil
		},
	}
	return cmd
}
