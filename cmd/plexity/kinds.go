package main

import (
	"fmt"
	"strconv"

	"github.com/panbanda/plexity/internal/output"
	"github.com/panbanda/plexity/pkg/analyzer/plexity"
	"github.com/panbanda/plexity/pkg/parser"
	"github.com/urfave/cli/v2"
)

type kindsResult struct {
	Language string   `json:"language" yaml:"language" toon:"language"`
	Kinds    []string `json:"kinds" yaml:"kinds" toon:"kinds"`
}

type languageInfo struct {
	Language      string `json:"language" yaml:"language" toon:"language"`
	DecisionKinds int    `json:"decision_kinds" yaml:"decision_kinds" toon:"decision_kinds"`
}

func kindsCmd() *cli.Command {
	return &cli.Command{
		Name:      "kinds",
		Usage:     "List the decision-point node kinds for a language",
		ArgsUsage: "LANGUAGE",
		Action:    runKindsCmd,
	}
}

func runKindsCmd(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one LANGUAGE argument")
	}
	lang, err := parser.ParseLanguage(c.Args().First())
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	classifier := plexity.NewClassifier(plexity.ConfigKindResolver(cfg)(lang)...)
	result := kindsResult{Language: string(lang), Kinds: classifier.Kinds()}

	rows := make([][]string, len(result.Kinds))
	for i, k := range result.Kinds {
		rows[i] = []string{k}
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(output.NewTable("Decision kinds: "+result.Language, []string{"Kind"}, rows, nil, result))
}

func languagesCmd() *cli.Command {
	return &cli.Command{
		Name:   "languages",
		Usage:  "List supported languages",
		Action: runLanguagesCmd,
	}
}

func runLanguagesCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	resolve := plexity.ConfigKindResolver(cfg)

	var infos []languageInfo
	var rows [][]string
	for _, lang := range parser.SupportedLanguages() {
		n := plexity.NewClassifier(resolve(lang)...).Len()
		infos = append(infos, languageInfo{Language: string(lang), DecisionKinds: n})
		rows = append(rows, []string{string(lang), strconv.Itoa(n)})
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(output.NewTable("Supported languages", []string{"Language", "Decision Kinds"}, rows, nil, infos))
}
