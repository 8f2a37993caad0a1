package cli

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/color-game/palettetool/render"
)

func newRenderCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <palette.json> <template>",
		Short: "Render a template against a palette document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := readFile(args[0])
			if err != nil {
				return err
			}
			tmpl, err := readTextFile(args[1])
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := render.Render(&buf, document, filepath.Base(args[1]), tmpl); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}

			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("error writing file: %w", err)
			}
			log.Printf("wrote %d bytes to %s", buf.Len(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
