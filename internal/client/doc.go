// Package client implements the reaction controller embedded in widget hosts.
//
// The controller owns the session's local "which reaction did I pick" marker,
// translates a tap into exactly one mutation request, and fans confirmed
// results out to every widget showing the same item. Displayed counts only
// ever change on a confirmed server response; the local marker is an advisory
// projection that gets reconciled against the server on mount.
package client
