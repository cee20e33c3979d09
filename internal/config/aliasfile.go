package config

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/hjwoodall/prediction-league/internal/domain/player"
	"github.com/hjwoodall/prediction-league/internal/domain/team"
)

// AliasFile is an optional JSON document that overrides the alias tables
// loaded from the database. Useful for local runs against a SOURCE_DIR and
// for trying new abbreviations before committing them.
type AliasFile struct {
	Teams   []teamAliasEntry   `json:"teams" validate:"required,min=1,dive"`
	Players []playerAliasEntry `json:"players" validate:"omitempty,dive"`
}

type teamAliasEntry struct {
	Canonical string   `json:"canonical" validate:"required,lowercase"`
	Aliases   []string `json:"aliases" validate:"omitempty,dive,required"`
}

type playerAliasEntry struct {
	Name    string   `json:"name" validate:"required"`
	Aliases []string `json:"aliases" validate:"omitempty,dive,required"`
}

var aliasFileValidator = validator.New(validator.WithRequiredStructEnabled())

func LoadAliasFile(path string) (AliasFile, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return AliasFile{}, fmt.Errorf("read alias file: %w", err)
	}

	var out AliasFile
	if err := sonic.Unmarshal(body, &out); err != nil {
		return AliasFile{}, fmt.Errorf("decode alias file: %w", err)
	}
	if err := aliasFileValidator.Struct(out); err != nil {
		return AliasFile{}, fmt.Errorf("validate alias file: %w", err)
	}

	return out, nil
}

// TeamAliases flattens the file into alias table rows.
func (f AliasFile) TeamAliases() []team.Alias {
	out := make([]team.Alias, 0, len(f.Teams))
	for _, entry := range f.Teams {
		for _, alias := range entry.Aliases {
			out = append(out, team.Alias{Alias: alias, Canonical: entry.Canonical})
		}
	}
	return out
}

// DisplayAliases flattens the file into player display alias rows.
func (f AliasFile) DisplayAliases() []player.DisplayAlias {
	out := make([]player.DisplayAlias, 0, len(f.Players))
	for _, entry := range f.Players {
		for _, alias := range entry.Aliases {
			out = append(out, player.DisplayAlias{Alias: alias, PlayerName: entry.Name})
		}
	}
	return out
}
