package eventmap

// Binding maps one event pattern to an action.
type Binding struct {
	// Pattern is the textual event pattern.
	// Examples: "key press CONTROL-'s'", "mouse down Left for col, row", "paste text"
	Pattern string

	// Action is the command to execute.
	// Examples: "app.quit", "view.scrollUp", "edit.paste"
	Action string

	// Args are fixed arguments for the action.
	Args map[string]any

	// Description provides documentation for the binding.
	Description string

	// Category groups bindings for display purposes.
	Category string
}

// NewBinding creates a new binding with the given pattern and action.
func NewBinding(pattern, action string) Binding {
	return Binding{
		Pattern: pattern,
		Action:  action,
	}
}

// WithArgs sets arguments for this binding.
func (b Binding) WithArgs(args map[string]any) Binding {
	b.Args = args
	return b
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithCategory sets the category for this binding.
func (b Binding) WithCategory(category string) Binding {
	b.Category = category
	return b
}

func (b Binding) clone() Binding {
	if b.Args != nil {
		args := make(map[string]any, len(b.Args))
		for k, v := range b.Args {
			args[k] = v
		}
		b.Args = args
	}
	return b
}

// BindingCategory represents a category of bindings for display.
type BindingCategory struct {
	Name     string
	Bindings []Binding
}

// GroupByCategory groups bindings by their category, keeping first-seen order.
func GroupByCategory(bindings []Binding) []BindingCategory {
	categoryMap := make(map[string][]Binding)
	order := make([]string, 0)

	for _, b := range bindings {
		cat := b.Category
		if cat == "" {
			cat = "Other"
		}
		if _, exists := categoryMap[cat]; !exists {
			order = append(order, cat)
		}
		categoryMap[cat] = append(categoryMap[cat], b)
	}

	result := make([]BindingCategory, 0, len(order))
	for _, name := range order {
		result = append(result, BindingCategory{
			Name:     name,
			Bindings: categoryMap[name],
		})
	}
	return result
}
