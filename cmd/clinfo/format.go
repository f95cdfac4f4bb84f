package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/types/known/structpb"
)

// writeReport writes the report to w in the given format.
func writeReport(w io.Writer, format string, r *report) error {
	switch format {
	case "text":
		return writeText(w, r)
	case "json", "prototext":
		s, err := r.toStruct()
		if err != nil {
			return err
		}
		var out []byte
		if format == "json" {
			out, err = protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
		} else {
			out, err = prototext.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
		}
		if err != nil {
			return errors.Wrapf(err, "failed to marshal report to %s", format)
		}
		_, err = fmt.Fprintln(w, string(out))
		return errors.WithStack(err)
	default:
		return errors.Errorf("unknown format %q, valid values are text, json or prototext", format)
	}
}

func formatID(id uintptr) string {
	return fmt.Sprintf("0x%x", id)
}

// toStruct converts the report to a protobuf Struct, which can be marshaled to JSON or text.
func (r *report) toStruct() (*structpb.Struct, error) {
	libraries := make(map[string]any, len(r.Libraries))
	for name, libPath := range r.Libraries {
		libraries[name] = libPath
	}
	icds := make([]any, 0, len(r.ICDs))
	for _, icd := range r.ICDs {
		icds = append(icds, map[string]any{"file": icd.File, "library": icd.Library})
	}
	platforms := make([]any, 0, len(r.Platforms))
	for _, info := range r.Platforms {
		extensions := make([]any, 0, len(info.Extensions))
		for _, extension := range info.Extensions {
			extensions = append(extensions, extension)
		}
		platforms = append(platforms, map[string]any{
			"id":         formatID(uintptr(info.ID)),
			"name":       info.Name,
			"vendor":     info.Vendor,
			"version":    info.Version,
			"profile":    info.Profile,
			"icd_suffix": info.ICDSuffix,
			"extensions": extensions,
		})
	}
	errs := make([]any, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, e)
	}
	s, err := structpb.NewStruct(map[string]any{
		"library":   r.Library,
		"libraries": libraries,
		"icds":      icds,
		"platforms": platforms,
		"errors":    errs,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert report to structpb.Struct")
	}
	return s, nil
}

// writeText writes the report in a human-readable form, with a table of the platforms.
func writeText(w io.Writer, r *report) error {
	var sb strings.Builder
	sb.WriteString("OpenCL libraries:\n")
	if len(r.Libraries) == 0 {
		sb.WriteString("\t(none found)\n")
	}
	names := make([]string, 0, len(r.Libraries))
	for name := range r.Libraries {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "\t%s: %s\n", name, r.Libraries[name])
	}
	sb.WriteString("Installable client drivers (ICDs):\n")
	if len(r.ICDs) == 0 {
		sb.WriteString("\t(none found)\n")
	}
	for _, icd := range r.ICDs {
		fmt.Fprintf(&sb, "\t%s: %s\n", icd.File, icd.Library)
	}
	if r.Library != "" {
		fmt.Fprintf(&sb, "Platforms of %s: %d\n", r.Library, len(r.Platforms))
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.WithStack(err)
	}

	if len(r.Platforms) > 0 {
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"ID", "NAME", "VENDOR", "VERSION", "PROFILE", "ICD SUFFIX", "EXTENSIONS"})
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetAutoWrapText(false)
		table.SetBorder(false)
		for _, info := range r.Platforms {
			table.Append([]string{formatID(uintptr(info.ID)), info.Name, info.Vendor, info.Version, info.Profile,
				info.ICDSuffix, fmt.Sprintf("%d", len(info.Extensions))})
		}
		table.Render()
	}

	for _, e := range r.Errors {
		if _, err := fmt.Fprintf(w, "Error: %s\n", e); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
