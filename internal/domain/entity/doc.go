// Package entity defines the content entities managed by the CMS (news, live
// streams, programs, radio, legislature, transparency pages and uploads) along
// with their enumerations and domain-specific errors.
package entity
