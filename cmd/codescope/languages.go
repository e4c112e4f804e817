package main

import (
	"log"

	"codescope/internal/analysis"
	"codescope/internal/lang"

	"github.com/spf13/cobra"
)

type languageInfo struct {
	Name       string   `json:"name" yaml:"name" toml:"name" cbor:"name" msgpack:"name"`
	Extensions []string `json:"extensions" yaml:"extensions" toml:"extensions" cbor:"extensions" msgpack:"extensions"`
}

type catalog struct {
	Languages  []languageInfo `json:"languages" yaml:"languages" toml:"languages" cbor:"languages" msgpack:"languages"`
	Categories []string       `json:"categories" yaml:"categories" toml:"categories" cbor:"categories" msgpack:"categories"`
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the supported language variants and node categories",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := loadSettings(cmd)
		if err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}

		var c catalog
		for _, id := range lang.All() {
			c.Languages = append(c.Languages, languageInfo{Name: id.String(), Extensions: id.Extensions()})
		}
		for _, cat := range analysis.Categories() {
			c.Categories = append(c.Categories, cat.String())
		}
		if err := s.writer.Write(c, "languages"); err != nil {
			log.Fatalf("Failed to write results: %v", err)
		}
	},
}
