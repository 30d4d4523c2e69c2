// Package newsrank turns raw HTML pages gathered from news sites into a
// ranked, deduplicated list of news items matching a target topic.
//
// Declarative parser rules pull candidate items out of each page, keyword
// groups score them, heterogeneous date expressions are normalized to
// calendar dates, and near-duplicate items are collapsed into a single
// ranked sequence.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package newsrank
