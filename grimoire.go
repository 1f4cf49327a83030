// Package grimoire provides a local, CLI-based bilingual reference tool
// for the Pathfinder Second Edition ruleset. It ingests the English
// mechanical dataset and the community French translation layer,
// reconciles them into a unified corpus indexed in SQLite, and serves
// ranked full-text lookup with per-category terminal rendering.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency or concern
// (e.g., sqlite/, htm/, git/).
package grimoire
