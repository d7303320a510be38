package rules

// Result is the outcome of evaluating a binding chain.
type Result struct {
	Valid bool
	// The fields below describe the first failing rule and are zero when Valid.
	Rule    string
	Param   Param
	Message string
	Key     string
}

// Evaluate runs bindings in order against value and stops at the first failure.
// Rules after a failing one are never evaluated.
func Evaluate(bindings []Binding, value string) Result {
	for _, b := range bindings {
		if b.Rule.Test == nil || b.Rule.Test(value, b.Param) {
			continue
		}
		return Result{
			Rule:    b.Name,
			Param:   b.Param,
			Message: b.Rule.Message.Resolve(b.Param),
			Key:     b.Rule.Key,
		}
	}
	return Result{Valid: true}
}
