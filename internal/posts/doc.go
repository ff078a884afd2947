// Package posts assembles parsed markdown documents into posts and loads
// directories of documents into date-ordered collections.
package posts
