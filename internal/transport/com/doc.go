// Package com implements the automation transport over COM for the
// HWPFrame.HwpObject automation server. It is available on Windows only;
// elsewhere Attach reports a missing dependency.
package com

// ProgID is the automation server class
const ProgID = "HWPFrame.HwpObject"
