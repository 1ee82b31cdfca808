/*
Package registry holds the Step Registry: the immutable, index-addressed list of
steps that makes up a decision tree.

Option labels are compiled once at construction. A trailing directive such as
"Proceed to Step 5" or "then Step 8" becomes the option's Destination, so the
navigation engine never re-parses prose on a click.
*/
package registry
