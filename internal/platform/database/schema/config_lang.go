// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column names of the relational store.
// SQL is built from these definitions so renames stay in one place.
package schema

// ConfigLangTable represents the 'config.langs' table
type ConfigLangTable struct {
	Table       string
	ID          string
	Description string
	Vn          string
	En          string
}

// ConfigLang is the schema definition for config.langs
var ConfigLang = ConfigLangTable{
	Table:       "config.langs",
	ID:          "id",
	Description: "description",
	Vn:          "vn",
	En:          "en",
}

// Columns lists every column, key first.
func (t ConfigLangTable) Columns() []string { return []string{t.ID, t.Description, t.Vn, t.En} }
