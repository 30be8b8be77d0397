// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package lang is the read side of the Lang lookup service.

It owns its own read model and never writes. Lookups are served over the
versioned REST routes, the minimal routes and the LangService gRPC service,
all dispatching through the mediator.
*/
package lang

// Lang is the read model of a config.langs row.
type Lang struct {
	ID          string  `json:"id"`
	Description *string `json:"description"`
	Vn          string  `json:"vn"`
	En          *string `json:"en"`
}

// IDMaxLength bounds the key accepted by lookups.
const IDMaxLength = 64
