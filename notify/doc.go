// Package notify delivers short user-visible messages ("toasts") raised by
// cart operations.
//
// A Notifier receives Notifications. LogNotifier writes them to the logger,
// Recorder keeps them for inspection, and Hub fans them out to any number
// of subscribers without ever blocking the sender.
package notify
