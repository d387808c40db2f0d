// Package domain holds the Task entity, the pagination value objects built
// around it, and the validation errors they report. It has no knowledge of
// HTTP or storage.
package domain
