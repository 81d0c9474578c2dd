package fundsight

// USD is a helper for tests to create dollar money from const.
func USD(v float64) Money { return M(v, "USD") }

// D is a helper for tests to build a date from its ISO form.
func D(s string) Date { return MustParseDate(s) }
