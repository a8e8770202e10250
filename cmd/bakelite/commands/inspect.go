package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/bakelite-lang/bakelite/internal/cli/output"
	"github.com/bakelite-lang/bakelite/internal/parser"
	"github.com/bakelite-lang/bakelite/internal/schema"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type inspectArgs struct {
	Input string `validate:"required,endswith=.bakelite"`
}

var (
	inspectInput string
	inspectJSON  bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize a resolved .bakelite schema",
	Long: `Inspect parses and resolves a .bakelite file and prints a summary of its
enums, structs, and protocol block: per-struct field counts and maximum
wire sizes, message ids, and the computed frame layout.

Examples:
  bakelite inspect -i protocol.bakelite
  bakelite inspect -i protocol.bakelite --json`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectInput, "input", "i", "", "input .bakelite file")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print a JSON Schema document describing the summary shape instead of a table")
}

func runInspect(cmd *cobra.Command, args []string) error {
	ia := inspectArgs{Input: inspectInput}
	if err := validator.New().Struct(ia); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	source, err := afero.ReadFile(FS, inspectInput)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inspectInput, err)
	}

	file, err := parser.Parse(string(source))
	if err != nil {
		return err
	}
	sch, err := schema.Resolve(file)
	if err != nil {
		return err
	}

	if inspectJSON {
		return printSchemaJSON(cmd)
	}
	return printSchemaTables(cmd, sch)
}

// summaryDoc is the shape bakelite inspect --json describes: not the
// resolved schema's data itself, but a JSON Schema document of what an
// inspection summary looks like, suitable for tooling that consumes
// bakelite's output programmatically.
type summaryDoc struct {
	Enum     enumSummary     `json:"enum"`
	Struct   structSummary   `json:"struct"`
	Protocol protocolSummary `json:"protocol"`
}

type enumSummary struct {
	Name       string   `json:"name" jsonschema_description:"Enum type name"`
	Underlying string   `json:"underlying" jsonschema_description:"Underlying integer primitive"`
	Members    []string `json:"members" jsonschema_description:"Declared member names, in declaration order"`
}

type structSummary struct {
	Name     string   `json:"name" jsonschema_description:"Struct type name"`
	Fields   []string `json:"fields" jsonschema_description:"Field names, in declaration order"`
	MaxBytes int      `json:"max_bytes" jsonschema_description:"Worst-case encoded size in bytes"`
}

type protocolSummary struct {
	Name          string `json:"name"`
	MaxLength     int    `json:"max_length"`
	Framing       string `json:"framing"`
	CRC           string `json:"crc"`
	MessageOffset int    `json:"message_offset" jsonschema_description:"cobs_overhead(max_length + crc_width)"`
	MessageCount  int    `json:"message_count"`
}

func printSchemaJSON(cmd *cobra.Command) error {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	doc := reflector.Reflect(&summaryDoc{})
	doc.Version = "https://json-schema.org/draft/2020-12/schema"
	doc.Title = "bakelite inspect summary"
	doc.Description = "Shape of the enum/struct/protocol summary bakelite inspect prints"

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling json schema: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func printSchemaTables(cmd *cobra.Command, sch *schema.Schema) error {
	w := cmd.OutOrStdout()

	if len(sch.EnumOrder) > 0 {
		fmt.Fprintln(w, "Enums:")
		t := output.NewTableData("NAME", "UNDERLYING", "MEMBERS")
		for _, name := range sch.EnumOrder {
			e := sch.Enums[name]
			t.AddRow(e.Name, e.Underlying.String(), strconv.Itoa(len(e.Values)))
		}
		if err := output.PrintTable(w, t); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if len(sch.StructOrder) > 0 {
		fmt.Fprintln(w, "Structs:")
		t := output.NewTableData("NAME", "FIELDS", "MAX BYTES")
		for _, name := range sch.StructOrder {
			s := sch.Structs[name]
			t.AddRow(s.Name, strconv.Itoa(len(s.Fields)), strconv.Itoa(s.MaxSize()))
		}
		if err := output.PrintTable(w, t); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if sch.Protocol != nil {
		p := sch.Protocol
		fmt.Fprintln(w, "Protocol:")
		pairs := [][2]string{
			{"name", p.Name},
			{"max_length", strconv.Itoa(p.MaxLength)},
			{"framing", p.Framing.String()},
			{"crc", p.CRC.String()},
			{"message_offset", strconv.Itoa(p.MessageOffset())},
		}
		if err := output.SimpleTable(w, pairs); err != nil {
			return err
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, "Messages:")
		t := output.NewTableData("ID", "STRUCT")
		for _, m := range p.Messages {
			t.AddRow(strconv.Itoa(m.ID), m.Struct.Name)
		}
		if err := output.PrintTable(w, t); err != nil {
			return err
		}
	}

	return nil
}
