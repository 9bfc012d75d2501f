/*
Package typing holds the per-session typing context: the cursor and
formatting state that decides indentation, one-shot alignment and
equation spacing across a stream of insertions.

The context is pure state. Callers perform the document side effects and
report them back through the transition methods.
*/
package typing
