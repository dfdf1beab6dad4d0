// Package regwatch reports changes to Windows registry keys.
//
// Watch blocks once for the next change. A Watcher re-arms the same watch from a background worker and
// delivers every response on a channel (Start) or through a lazily started Stream. Only the fact that a
// change happened is reported, and changes that occur while no watch is armed are collapsed or lost.
package regwatch
