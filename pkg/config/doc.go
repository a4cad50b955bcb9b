// Package config loads env-tagged configuration structs from the process
// environment, with optional .env support for local development.
//
// Each configuration type is parsed once and cached, so independent packages
// can call Load for their own Config struct without coordinating.
package config
