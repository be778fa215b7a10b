package main

import (
	"fmt"
	"go/ast"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-peyrard/godeco/slices"
	"github.com/rs/zerolog"
	"golang.org/x/tools/go/packages"
)

const classAnnotationTag = "@class"

type (
	// ClassDefinition is a blueprint function found in the module: a function
	// returning the class options of one class, annotated with @class.
	ClassDefinition struct {
		Named       string
		Extends     string
		Description string

		FnName     string
		ImportPath string
		Package    string
	}
)

func (c ClassDefinition) String() string {
	return fmt.Sprintf(
		`🏗️ Class: %s
Description: %s
Import Path: %s
Blueprint: %s
Extends: %s`,
		c.Named,
		c.Description,
		c.ImportPath,
		c.FnName,
		c.Extends,
	)
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached root
		}
		dir = parent
	}
	return "."
}

func main() {
	dryRun := os.Getenv("DRY_RUN") == "true"

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
		With().
		Timestamp().
		Logger()

	startScan := time.Now()

	// capture the target file/package, where the generator is invoked
	targetFile := os.Getenv("GOFILE")
	targetPackage := os.Getenv("GOPACKAGE")
	currentDir, _ := os.Getwd()
	targetFilePath := filepath.Join(currentDir, targetFile)

	// switch to the root of the module as we want to scan the whole module
	moduleRoot := findModuleRoot()
	if err := os.Chdir(moduleRoot); err != nil {
		log.Fatalf("Failed to change directory to module root: %v\n", err)
	}

	// analyze all the packages in the module, looking for blueprint
	// functions annotated with @class
	var classDefinitions []ClassDefinition

	cfg := &packages.Config{
		Mode: packages.NeedFiles | packages.NeedSyntax,
	}
	pkgs, _ := packages.Load(cfg, "./...")

	for _, pkg := range pkgs {
		logger := logger.With().Str("package", pkg.ID).Logger()
		logger.Debug().Msg("Scanning package")
		for _, file := range pkg.Syntax {
			packageName := file.Name.Name
			importPath := pkg.ID

			ast.Inspect(file, func(n ast.Node) bool {
				fn, ok := n.(*ast.FuncDecl)
				if !ok {
					return true
				}
				if fn.Doc == nil || !strings.Contains(fn.Doc.Text(), classAnnotationTag) {
					return true
				}

				logger := logger.With().Str("blueprint", fn.Name.Name).Logger()
				logger.Debug().Msg("=> Found class blueprint")

				annotation := parseClassAnnotation(&logger, fn.Doc.Text())
				if unknown := annotation.UnknownProperties(); len(unknown) > 0 {
					logger.Warn().Msgf("Unknown @class properties: %s, ignoring them", strings.Join(unknown, ", "))
				}

				named, found := annotation.Named()
				if !found {
					// default to the blueprint name, without a Class suffix
					named = strings.TrimSuffix(fn.Name.Name, "Class")
				}
				extends, _ := annotation.Extends()

				classDefinitions = append(classDefinitions, ClassDefinition{
					Named:       named,
					Extends:     extends,
					Description: annotation.description,
					FnName:      fn.Name.Name,
					ImportPath:  importPath,
					Package:     packageName,
				})
				return true
			})
		}
	}

	stopScan := time.Now()

	logger.Info().Msgf("🎯 %d class blueprints found in the module", len(classDefinitions))
	definitionsLogs := slices.Map(classDefinitions, ClassDefinition.String)
	logger.Debug().Msgf("Classes:\n%s", strings.Join(definitionsLogs, "\n----\n"))
	logger.Info().Msgf("🕵️‍♂️ Scanning completed in %s", stopScan.Sub(startScan))

	ordered, err := orderBaseFirst(classDefinitions)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to order class definitions")
		os.Exit(1)
	}

	outputPath := filepath.Join(
		filepath.Dir(targetFilePath),
		strings.TrimSuffix(filepath.Base(targetFilePath), ".go")+"_gen.go",
	)
	if dryRun {
		outputPath = filepath.Join("/tmp", filepath.Base(outputPath))
	}

	err = generateCode(outputPath, targetPackage, ordered)
	if err != nil {
		logger.Error().Err(err).Msgf("Failed to generate code in %s", outputPath)
		os.Exit(1)
	}
	logger.Info().Msgf("✅ Code generated successfully in %s", outputPath)
}
