package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/color-game/palettetool/assembler"
	"github.com/color-game/palettetool/extractor"
)

func newExtractCommand() *cobra.Command {
	var (
		algo     string
		language string
		tool     string
		url      string
	)

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract named hex colors from a document into a palette document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readTextFile(args[0])
			if err != nil {
				return err
			}

			ext, err := extractor.NewExtractor(extractor.Algorithm(algo), extractor.Options{
				Filename: args[0],
				Language: language,
			})
			if err != nil {
				return err
			}

			pairs := ext.Extract(text)
			log.Printf("found %d candidate colors in %s", len(pairs), args[0])

			if tool == "" {
				tool = LoadConfig().ConversionTool
			}
			asm := assembler.New(tool)
			asm.URL = url

			doc, err := asm.Assemble(pairs)
			if err != nil {
				return err
			}

			out, err := doc.MarshalIndented()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVar(&algo, "algo", string(extractor.AlgorithmPreviousKeyword), fmt.Sprintf("extraction algorithm %v", extractor.ValidAlgorithms()))
	cmd.Flags().StringVar(&language, "language", "", "force a lexer language for the lexical algorithm")
	cmd.Flags().StringVar(&tool, "tool", "", "conversion tool recorded in the document source (default $CONVERSION_TOOL)")
	cmd.Flags().StringVar(&url, "url", "", "source url recorded in the document source")
	return cmd
}
