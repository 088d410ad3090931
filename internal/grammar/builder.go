package grammar

import "fmt"

// RuleMap is the fully bound grammar a Builder produces: every rule
// referenced by id, with its dependencies resolved regardless of
// declaration order.
type RuleMap map[string]Rule

// Builder accumulates rule declarations by id without building them,
// so a rule can declare a dependency on an id that hasn't been added
// yet (or that refers back to itself). Build constructs every rule
// and then binds dependencies in a second pass.
type Builder struct {
	factories map[string]func() Rule
	depends   map[string][]string
	order     []string
	err       error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{factories: map[string]func() Rule{}, depends: map[string][]string{}}
}

func (b *Builder) add(id string, factory func() Rule) *Builder {
	if b.err != nil {
		return b
	}
	if _, exists := b.factories[id]; exists {
		b.err = fmt.Errorf("rule %q already defined", id)
		return b
	}
	b.factories[id] = factory
	b.order = append(b.order, id)
	return b
}

// Eof adds an end-of-input rule.
func (b *Builder) Eof(id string) *Builder {
	return b.add(id, func() Rule { return Eof(id) })
}

// Empty adds an always-matching, non-consuming rule.
func (b *Builder) Empty(id string) *Builder {
	return b.add(id, func() Rule { return Empty(id) })
}

// Int adds an integer-literal rule.
func (b *Builder) Int(id string) *Builder {
	return b.add(id, func() Rule { return Int(id) })
}

// Real adds a real-literal rule.
func (b *Builder) Real(id string) *Builder {
	return b.add(id, func() Rule { return Real(id) })
}

// Oper adds an operator-token rule matching id's own text.
func (b *Builder) Oper(id string) *Builder {
	return b.add(id, func() Rule { return Oper(id) })
}

// Id adds a keyword rule matching id's own text.
func (b *Builder) Id(id string) *Builder {
	return b.add(id, func() Rule { return Id(id) })
}

// IdIn adds a rule matching any identifier in idents.
func (b *Builder) IdIn(id string, idents map[string]bool) *Builder {
	return b.add(id, func() Rule { return IdIn(id, idents) })
}

// IdNotIn adds a rule matching any identifier not in idents.
func (b *Builder) IdNotIn(id string, idents map[string]bool) *Builder {
	return b.add(id, func() Rule { return IdNotIn(id, idents) })
}

// Require adds a rule matching the fixed sequence ruleIDs, all of
// which are mandatory.
func (b *Builder) Require(id string, ruleIDs []string) *Builder {
	b.add(id, func() Rule { return &requireRule{nonTerminal{id: id}} })
	b.depends[id] = ruleIDs
	return b
}

// Opt adds a rule matching ruleIDs[0] (the condition) optionally, with
// ruleIDs[1:] mandatory once the condition matches.
func (b *Builder) Opt(id string, ruleIDs []string) *Builder {
	if b.err == nil && len(ruleIDs) < 1 {
		b.err = fmt.Errorf("missing condition for rule %q", id)
		return b
	}
	b.add(id, func() Rule { return &optRule{nonTerminal{id: id}} })
	b.depends[id] = ruleIDs
	return b
}

// Options adds a rule matching the first of ruleIDs that succeeds.
func (b *Builder) Options(id string, ruleIDs []string) *Builder {
	b.add(id, func() Rule { return &optionsRule{nonTerminal{id: id}} })
	b.depends[id] = ruleIDs
	return b
}

// Repeat adds a rule matching ruleID zero or more times.
func (b *Builder) Repeat(id string, ruleID string) *Builder {
	b.add(id, func() Rule { return &repeatRule{nonTerminal{id: id}} })
	b.depends[id] = []string{ruleID}
	return b
}

// Build constructs every declared rule, then binds each one's
// dependencies to the constructed instances. It fails if any prior
// declaration was invalid, or if a dependency names an id that was
// never declared.
func (b *Builder) Build() (RuleMap, error) {
	if b.err != nil {
		return nil, b.err
	}
	result := make(RuleMap, len(b.order))
	for _, id := range b.order {
		result[id] = b.factories[id]()
	}
	for id, depIDs := range b.depends {
		deps := make([]Rule, 0, len(depIDs))
		for _, depID := range depIDs {
			dep, ok := result[depID]
			if !ok {
				return nil, fmt.Errorf("missing dependent rule %q for rule %q", depID, id)
			}
			deps = append(deps, dep)
		}
		result[id].Bind(deps)
	}
	return result, nil
}
