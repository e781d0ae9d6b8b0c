package commands

// PlanAll exports planAll for testing.
var PlanAll = planAll //nolint:gochecknoglobals // test export

// TokenForRemote exports tokenForRemote for testing.
var TokenForRemote = tokenForRemote //nolint:gochecknoglobals // test export

// UpdateChangelog exports updateChangelog for testing.
var UpdateChangelog = updateChangelog //nolint:gochecknoglobals // test export
