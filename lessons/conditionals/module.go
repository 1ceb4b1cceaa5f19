// Package conditionals is lesson 2.1: if, elif and else.
package conditionals

import (
	"fmt"

	"github.com/vk/aplab/internal/chart"
	"github.com/vk/aplab/internal/expr"
	"github.com/vk/aplab/internal/locator"
	"github.com/vk/aplab/internal/page"
	"github.com/vk/aplab/internal/pyfmt"
	"github.com/vk/aplab/internal/registry"
	"github.com/vk/aplab/internal/ui"
)

// Locator is the catalog locator this module serves.
const Locator = "aplab.topics.t02_control_flow.t01_conditionals"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the page with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterPage(locator.MustParse(Locator), page.Func(Show))
}

// Show renders the lesson.
func Show(pc *page.Context) error {
	pc.Header("2.1 Conditionals in Python")
	pc.Markdown(`
		### Making Decisions 🚦

		Programs often need to choose what to do next. Python uses **if**,
		**elif** and **else** to run different code depending on a condition.
	`)
	pc.Code(`
		if condition:
		    # runs when condition is True
		elif other_condition:
		    # runs when the first was False and this one is True
		else:
		    # runs when nothing above was True
	`)

	tabs := pc.Tabs("🌡️ If / Elif / Else", "🎟️ Combining Conditions", "🚦 Traffic Light", "🧪 Condition Lab")
	weather(tabs[0])
	tickets(tabs[1])
	trafficLight(tabs[2])
	lab(tabs[3])

	score, err := pc.Session().Int("conditionals_quiz", 0)
	if err != nil {
		return err
	}
	pc.Divider()
	pc.Subheader("📝 Quick Check")
	answer := pc.Radio("What does this print when x = 7?\nif x > 10: print('big') elif x > 5: print('medium') else: print('small')",
		[]string{"big", "medium", "small"}, ui.Key("quiz_answer"))
	if pc.Button("Submit Answer") {
		if answer == "medium" {
			score++
			if err := pc.Session().SetInt("conditionals_quiz", score); err != nil {
				return err
			}
			pc.Success("Correct! 7 is not greater than 10, but it is greater than 5.")
		} else {
			pc.Error("Not quite. Check the conditions from top to bottom: the first True one wins.")
		}
	}
	pc.Metric("Correct answers", fmt.Sprint(score), "")
	return nil
}

// advice returns the branch taken for a temperature and what it suggests.
func advice(temp int) (branch, text string) {
	switch {
	case temp >= 30:
		return "if", "🩳 It's hot! Wear shorts and drink water."
	case temp >= 20:
		return "elif temp >= 20", "👕 Nice weather. A t-shirt is enough."
	case temp >= 10:
		return "elif temp >= 10", "🧥 A bit cool. Take a jacket."
	}
	return "else", "🧣 It's cold! Wear a warm coat."
}

func weather(s *ui.Surface) {
	s.Markdown("### 🌡️ What Should I Wear?")
	temp := s.Slider("Temperature (°C):", -20, 45, 22)
	branch, text := advice(temp)

	cols := s.Columns(2)
	cols[0].Code(fmt.Sprintf(`
		temp = %d

		if temp >= 30:
		    print("Hot")
		elif temp >= 20:
		    print("Nice")
		elif temp >= 10:
		    print("Cool")
		else:
		    print("Cold")
	`, temp))
	cols[1].Info(text)
	cols[1].Markdownf("Branch taken: **%s**", branch)

	s.Chart(chart.FlowChart([]string{fmt.Sprintf("temp = %d", temp), branch, "print"}))
}

// ticketPrice mirrors the Python shown on the page.
func ticketPrice(age int, student, weekend bool) float64 {
	price := 12.0
	if age < 12 || age >= 65 {
		price = 6
	} else if student {
		price = 8
	}
	if weekend && !(age < 12) {
		price += 2
	}
	return price
}

func tickets(s *ui.Surface) {
	s.Markdown(`
		### 🎟️ Cinema Ticket Pricer

		Conditions can be combined with **and**, **or** and **not**.
	`)
	cols := s.Columns(2)
	age := cols[0].Int("Age:", 30, ui.Range(0, 120))
	student := cols[0].Checkbox("Student", false)
	weekend := cols[0].Checkbox("Weekend", true)

	price := ticketPrice(age, student, weekend)
	cols[1].Code(fmt.Sprintf(`
		age = %d
		is_student = %s
		is_weekend = %s

		price = 12.0
		if age < 12 or age >= 65:
		    price = 6.0
		elif is_student:
		    price = 8.0
		if is_weekend and not age < 12:
		    price += 2
	`, age, pyfmt.Bool(student), pyfmt.Bool(weekend)))
	cols[1].Metric("Ticket price", fmt.Sprintf("$%.2f", price), "")
}

func trafficLight(s *ui.Surface) {
	s.Markdown("### 🚦 Traffic Light")
	light := s.Radio("Light colour:", []string{"green", "yellow", "red"})
	pedestrians := s.Checkbox("Pedestrians crossing", false)

	var action string
	switch {
	case light == "red" || pedestrians:
		action = "Stop"
		s.Error("🛑 Stop!")
	case light == "yellow":
		action = "Slow down"
		s.Warning("⚠️ Slow down")
	default:
		action = "Go"
		s.Success("✅ Go")
	}
	s.Code(fmt.Sprintf(`
		light = %s
		pedestrians = %s

		if light == "red" or pedestrians:
		    action = "Stop"
		elif light == "yellow":
		    action = "Slow down"
		else:
		    action = "Go"
		# action == %s
	`, pyfmt.Str(light), pyfmt.Bool(pedestrians), pyfmt.Str(action)))
}

func lab(s *ui.Surface) {
	s.Markdown(`
		### 🧪 Condition Lab

		Write a condition with numbers, comparisons and && / || / !
		and see whether it is True or False.
	`)
	src := s.TextInput("Condition:", "7 > 5 && 3 < 1")
	res, err := expr.Evaluate(src)
	if err != nil {
		s.Error(err.Error())
		return
	}
	if expr.TypeName(res.Value) != "bool" {
		s.Warning(fmt.Sprintf("That is a %s, not a condition. Conditions evaluate to True or False.", expr.TypeName(res.Value)))
		return
	}
	if res.Value.True() {
		s.Success("The condition is True: the if-block would run.")
	} else {
		s.Info("The condition is False: Python would skip to elif/else.")
	}
	for _, step := range res.Steps {
		s.Text(step.String())
	}
}
