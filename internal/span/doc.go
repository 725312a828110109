// Package span finds translatable text inside a single line and rebuilds the
// line around the translated fragments.
//
// A Rule maps a line to an ordered list of non-overlapping Spans. Reconstruct
// copies everything outside the spans verbatim, so with an identity resolver
// the output equals the input plus a CRLF terminator.
package span
