package ui

import "strings"

// DefaultEditorPackages are loaded into the in-browser interpreter when a
// code editor does not name its own.
var DefaultEditorPackages = []string{"numpy", "pandas"}

// Editor embeds the third-party in-browser Python REPL. Code typed into it
// runs in the learner's browser only; the server never executes it.
type Editor struct {
	Code     string
	Packages []string
	Height   int
}

// PackagesList formats the package list for the interpreter config.
func (e *Editor) PackagesList() string {
	quoted := make([]string, len(e.Packages))
	for i, p := range e.Packages {
		quoted[i] = `"` + strings.ReplaceAll(p, `"`, ``) + `"`
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// EditorHeight returns the minimum height of the REPL area in pixels.
func (e *Editor) EditorHeight() int {
	if e.Height <= 100 {
		return 300
	}
	return e.Height - 100
}

// CodeEditor appends an in-browser REPL pre-filled with code.
func (s *Surface) CodeEditor(code string, height int, packages ...string) {
	if len(packages) == 0 {
		packages = DefaultEditorPackages
	}
	s.add(&Block{Kind: KindCodeEditor, Editor: &Editor{
		Code:     Dedent(code),
		Packages: packages,
		Height:   height,
	}})
}

// Example is a named snippet offered by CodeEditorWithExamples.
type Example struct {
	Name string
	Code string
}

// DefaultExamples are the snippets offered when a page supplies none.
var DefaultExamples = []Example{
	{Name: "Hello World", Code: `print("Hello, World!")`},
	{Name: "Basic Math", Code: `
# Basic mathematics
a = 10
b = 5
print(f"Sum: {a + b}")
print(f"Product: {a * b}")
`},
	{Name: "Lists and Loops", Code: `
# Working with lists
numbers = [1, 2, 3, 4, 5]
for num in numbers:
    print(f"Square of {num} is {num ** 2}")
`},
	{Name: "Functions", Code: `
# Define and use a function
def greet(name):
    return f"Hello, {name}!"

print(greet("Python Learner"))
`},
}

// CodeEditorWithExamples lets the learner pick a snippet and opens it in a
// code editor. It returns the chosen example name.
func (s *Surface) CodeEditorWithExamples(examples []Example, height int) string {
	if len(examples) == 0 {
		examples = DefaultExamples
	}
	names := make([]string, len(examples))
	for i, ex := range examples {
		names[i] = ex.Name
	}
	chosen := s.Select("Choose an example:", names)
	for _, ex := range examples {
		if ex.Name == chosen {
			s.CodeEditor(ex.Code, height)
			break
		}
	}
	return chosen
}
