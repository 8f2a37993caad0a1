package cli

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/color-game/palettetool/models"
)

func newInspectCommand() *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "inspect <palette.json>",
		Short: "Print a palette's colors as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readFile(args[0])
			if err != nil {
				return err
			}
			doc, err := models.ParseDocument(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if index < 0 || index >= len(doc.Palettes) {
				return fmt.Errorf("palette index %d out of range (document has %d)", index, len(doc.Palettes))
			}
			return writePaletteTable(cmd.OutOrStdout(), doc.Palettes[index])
		},
	}

	cmd.Flags().IntVar(&index, "palette", 0, "palette to print (starting from 0)")
	return cmd
}

// writePaletteTable aligns names by display width so wide runes line up.
func writePaletteTable(w io.Writer, p models.Palette) error {
	width := runewidth.StringWidth("NAME")
	for _, c := range p.Colors {
		if cw := runewidth.StringWidth(c.Name); cw > width {
			width = cw
		}
	}

	if _, err := fmt.Fprintf(w, "%s (%d colors, %s @ %s)\n", p.Title, len(p.Colors), p.Source.ConversionTool, p.Source.ConversionDate); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s  %-7s  %3s %3s %3s %3s\n", runewidth.FillRight("NAME", width), "HEX", "R", "G", "B", "A"); err != nil {
		return err
	}
	for _, c := range p.Colors {
		rgba := c.RGBA8()
		_, err := fmt.Fprintf(w, "%s  #%s  %3d %3d %3d %3d\n", runewidth.FillRight(c.Name, width), c.Hex(), rgba.R, rgba.G, rgba.B, rgba.A)
		if err != nil {
			return err
		}
	}
	return nil
}
