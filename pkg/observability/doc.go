/*
Package observability provides tools for monitoring the wizard engine.

It turns engine lifecycle hooks into Prometheus metrics and structured audit
logs, and composes several hook sets into one.
*/
package observability
