// Package hwp exposes the document controller as the "hwp" service. Each
// tool maps to one controller operation; calls are serialized because the
// controller and the application's automation server are single-threaded.
package hwp
