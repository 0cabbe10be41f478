// Package notes writes one markdown note per watched episode, with YAML
// frontmatter a note-taking app can index. Writing is idempotent per
// episode and date: an existing note is never overwritten.
package notes
