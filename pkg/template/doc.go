// Package template materializes a profile's templates/home tree into its
// home tree by substituting {{variable}} tokens.
//
// Rendering is plain text substitution in a single pass. There is no
// expression evaluation, no escaping and no recursion: a value that itself
// contains a token is written out verbatim. Tokens with no matching
// variable are left in place.
package template
