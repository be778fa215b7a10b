package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// orderBaseFirst sorts class definitions so that every class appears after
// the class it extends. Classes are defined in that order, which guarantees
// a superclass's metadata container is published before any subclass links
// under it.
func orderBaseFirst(definitions []ClassDefinition) ([]ClassDefinition, error) {
	byName := make(map[string]ClassDefinition, len(definitions))
	for _, def := range definitions {
		if _, exists := byName[def.Named]; exists {
			return nil, fmt.Errorf("duplicate class definition for %s", def.Named)
		}
		byName[def.Named] = def
	}

	var (
		ordered = make([]ClassDefinition, 0, len(definitions))
		placed  = make(map[string]bool, len(definitions))
	)
	for len(ordered) < len(definitions) {
		progressed := false
		for _, def := range definitions {
			if placed[def.Named] {
				continue
			}
			if def.Extends != "" {
				if _, known := byName[def.Extends]; !known {
					return nil, fmt.Errorf("class %s extends unknown class %s", def.Named, def.Extends)
				}
				if !placed[def.Extends] {
					continue
				}
			}
			ordered = append(ordered, def)
			placed[def.Named] = true
			progressed = true
		}
		if !progressed {
			return nil, fmt.Errorf("extends cycle detected among class definitions")
		}
	}

	return ordered, nil
}

func generateCode(outputPath string, targetPackage string, definitions []ClassDefinition) error {
	var b strings.Builder

	b.WriteString("// Code generated by decogen. DO NOT EDIT.\n\n")
	b.WriteString(fmt.Sprintf("package %s\n\n", targetPackage))

	b.WriteString("import (\n")
	b.WriteString("\t\"github.com/a-peyrard/godeco\"\n")
	for _, importPath := range blueprintImports(targetPackage, definitions) {
		b.WriteString(fmt.Sprintf("\t\"%s\"\n", importPath))
	}
	b.WriteString(")\n\n")

	b.WriteString("// DefineClasses defines every annotated class of the module, base classes first.\n")
	b.WriteString("func DefineClasses(definer *godeco.Definer) (map[string]*godeco.Class, error) {\n")
	b.WriteString("\tclasses := make(map[string]*godeco.Class)\n")
	b.WriteString("\tvar err error\n\n")

	for _, def := range definitions {
		call := def.FnName
		if def.Package != targetPackage {
			call = def.Package + "." + def.FnName
		}

		b.WriteString(fmt.Sprintf("\t// %s\n", def.Named))
		if def.Extends != "" {
			b.WriteString(fmt.Sprintf(
				"\tclasses[%q], err = definer.Define(%q, append(%s(), godeco.Extends(classes[%q]))...)\n",
				def.Named, def.Named, call, def.Extends,
			))
		} else {
			b.WriteString(fmt.Sprintf(
				"\tclasses[%q], err = definer.Define(%q, %s()...)\n",
				def.Named, def.Named, call,
			))
		}
		b.WriteString("\tif err != nil {\n\t\treturn nil, err\n\t}\n\n")
	}

	b.WriteString("\treturn classes, nil\n")
	b.WriteString("}\n")

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory:\n\t%w", err)
	}
	if err := os.WriteFile(outputPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write generated file:\n\t%w", err)
	}

	return nil
}

func blueprintImports(targetPackage string, definitions []ClassDefinition) []string {
	var (
		seen    = make(map[string]bool)
		imports []string
	)
	for _, def := range definitions {
		if def.Package == targetPackage || seen[def.ImportPath] {
			continue
		}
		seen[def.ImportPath] = true
		imports = append(imports, def.ImportPath)
	}
	return imports
}
