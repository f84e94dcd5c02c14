// Package docsctl is a terminal front end for the document-records API.
//
// It binds an [store.AuthStore] and a [store.RecordsStore] to a small set of
// sub-commands. The session token survives between invocations through the
// configured [session.Storage], so a typical session looks like:
//
//	docsctl login -u alice
//	docsctl list
//	docsctl create -document-name contract.pdf -company-sig-date 2024-03-01 ...
//	docsctl update -id 9b1c... -document-status archived
//	docsctl export -o documents.xlsx
//	docsctl logout
//
// Settings come from an optional YAML file, USERDOCS_* environment variables
// and global flags, in increasing order of precedence. See [config.Load].
package docsctl
