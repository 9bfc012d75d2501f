// Package equation translates LaTeX math into the word processor's
// equation script and builds equation objects at the cursor.
package equation
