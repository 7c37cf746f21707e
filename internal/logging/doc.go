package logging

// Package logging builds the application slog logger. Output goes to the
// console and optionally to a log file so unattended batch runs keep a
// persistent record of every download and skip decision.
