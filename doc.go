// Package main implements aoc-env, a CLI companion for the Advent of Code
// puzzle series.
//
// # Features
//
//   - Session-cookie authenticated fetching of puzzle statements and inputs
//   - Local per-day cache so every statement and input is downloaded once
//   - HTML statement rendering for terminal reading
//   - Answer submission with verdict parsing, cooldown tracking and
//     solved-puzzle short-circuiting
//
// # Usage
//
//	aoc-env text    [--year Y] [--day D]
//	aoc-env input   [--year Y] [--day D]
//	aoc-env submit  --part P --answer A [--year Y] [--day D]
//	aoc-env history [--year Y] [--day D]
//	aoc-env setup   --session TOKEN
//
// # Configuration
//
// Configuration is loaded from config.json in the current directory or the
// path given by --config. The session token may also be supplied through the
// AOC_SESSION environment variable (a .env file is honored).
package main
