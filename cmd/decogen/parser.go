package main

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

type ClassAnnotation struct {
	logger      *zerolog.Logger
	description string
	properties  map[string]string
}

func (a ClassAnnotation) Named() (named string, found bool) {
	named, found = a.properties["named"]
	return named, found
}

func (a ClassAnnotation) Extends() (extends string, found bool) {
	extends, found = a.properties["extends"]
	return extends, found
}

var knownProperties = []string{"named", "extends"}

func (a ClassAnnotation) UnknownProperties() []string {
	var unknown []string
	for key := range a.properties {
		if !contains(knownProperties, key) {
			unknown = append(unknown, key)
		}
	}
	return unknown
}

func parseClassAnnotation(logger *zerolog.Logger, docText string) ClassAnnotation {
	lines := strings.Split(docText, "\n")

	var descriptionLines []string
	var classLine string

	// separate the @class line from the description
	for _, line := range lines {
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, classAnnotationTag) {
			classLine = line
		} else if line != "" && !strings.HasPrefix(line, "@") {
			descriptionLines = append(descriptionLines, line)
		}
	}

	return ClassAnnotation{
		logger:      logger,
		description: strings.TrimSpace(strings.Join(descriptionLines, "\n")),
		properties:  parseProperties(classLine, classAnnotationTag),
	}
}

func parseProperties(line string, tag string) map[string]string {
	properties := make(map[string]string)

	if line == "" {
		return properties
	}

	content := strings.TrimPrefix(line, tag)
	content = strings.TrimSpace(content)

	if content == "" {
		return properties
	}

	// regex to match key=value or key="value" patterns
	re := regexp.MustCompile(`(\w+)=(?:"([^"]*)"|(\w+))`)
	matches := re.FindAllStringSubmatch(content, -1)

	for _, match := range matches {
		key := match[1]
		// match[2] is quoted value, match[3] is unquoted value
		value := match[2]
		if value == "" {
			value = match[3]
		}
		properties[key] = value
	}

	return properties
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
