package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosniff/internal/ui/pretty"
	"github.com/yaklabco/gosniff/pkg/sniff"
)

const formatJSON = "json"

// sniffInfo represents a sniff in JSON output.
type sniffInfo struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Kinds       []string `json:"kinds"`
	Enabled     bool     `json:"enabled"`
	Fixable     bool     `json:"fixable"`
}

func newSniffsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "sniffs",
		Short: "List available sniffs",
		Long: `List all registered sniffs with their codes, descriptions, the file kinds
they apply to, whether they run by default, and whether they can fix
what they report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := collectSniffs(sniff.DefaultRegistry)

			switch format {
			case formatJSON:
				return writeSniffsJSON(cmd.OutOrStdout(), infos)
			case "", "text":
				colorMode, err := cmd.Flags().GetString("color")
				if err != nil {
					colorMode = "auto"
				}
				return writeSniffsTable(cmd.OutOrStdout(), infos, colorMode)
			default:
				return &ExitError{
					Code: ExitInvalidUsage,
					Err:  fmt.Errorf("unknown format %q; valid formats: text, json", format),
				}
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

// collectSniffs describes every registered sniff, sorted by code.
func collectSniffs(registry *sniff.Registry) []sniffInfo {
	codes := registry.Codes()
	infos := make([]sniffInfo, 0, len(codes))
	for _, code := range codes {
		s, ok := registry.Get(code)
		if !ok {
			continue
		}
		kinds := make([]string, 0, len(s.SupportedKinds()))
		for _, k := range s.SupportedKinds() {
			kinds = append(kinds, k.String())
		}
		infos = append(infos, sniffInfo{
			Code:        code,
			Description: s.Description(),
			Kinds:       kinds,
			Enabled:     s.DefaultEnabled(),
			Fixable:     s.CanFix(),
		})
	}
	return infos
}

func writeSniffsJSON(w io.Writer, infos []sniffInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encode sniffs: %w", err)
	}
	return nil
}

func writeSniffsTable(w io.Writer, infos []sniffInfo, colorMode string) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, w))
	table := pretty.NewTable(styles, pretty.TerminalWidth(w), "CODE", "KINDS", "DEFAULT", "FIX", "DESCRIPTION")

	for _, info := range infos {
		kinds := "all"
		if len(info.Kinds) > 0 {
			kinds = strings.Join(info.Kinds, ",")
		}
		table.AddRow(info.Code, kinds, yesNo(info.Enabled, "on", "off"), yesNo(info.Fixable, "yes", "-"), info.Description)
	}

	if _, err := io.WriteString(w, table.String()); err != nil {
		return fmt.Errorf("write sniffs: %w", err)
	}
	return nil
}

func yesNo(v bool, yes, no string) string {
	if v {
		return yes
	}
	return no
}
