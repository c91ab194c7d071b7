package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/treevent/pkg/treevent/dom"
	"github.com/randalmurphal/treevent/pkg/treevent/event"
)

// Scenario is a scripted sequence of tree mutations.
type Scenario struct {
	// Watch lists extra event names to report besides the lifecycle events.
	Watch []string `yaml:"watch"`
	Steps []Step   `yaml:"steps"`
}

// Step is one operation. Which fields apply depends on Op:
//
//	create   id, tag          new detached element with that id
//	text     id, text         new detached text node
//	append   id, parent       parent.AppendChild(id)
//	insert   id, parent, before
//	fragment children, parent append the children through a fragment
//	detach   id               silent removal from its parent
//	destroy  id               Destroy
//	set      id, name, value  SetAttribute
//	unset    id, name         RemoveAttribute
//	trigger  id, event, bubble
//
// The parent "body" names the document body.
type Step struct {
	Op       string   `yaml:"op"`
	ID       string   `yaml:"id"`
	Tag      string   `yaml:"tag"`
	Text     string   `yaml:"text"`
	Parent   string   `yaml:"parent"`
	Before   string   `yaml:"before"`
	Children []string `yaml:"children"`
	Name     string   `yaml:"name"`
	Value    string   `yaml:"value"`
	Event    string   `yaml:"event"`
	Bubble   bool     `yaml:"bubble"`
}

var errUnknownNode = errors.New("unknown node")

// LoadScenario reads a scenario file. Unknown keys are rejected.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes scenario YAML. Unknown keys are rejected.
func ParseScenario(data []byte) (Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	return sc, nil
}

// runner applies a scenario to one document and reports notifications
// through a monitor that relays from every node it creates.
type runner struct {
	doc     *dom.Document
	nodes   map[string]*dom.Node
	monitor *event.Emitter
	watch   []string
	out     io.Writer
}

// Run applies sc to doc and writes one line per observed notification.
func Run(doc *dom.Document, sc Scenario, out io.Writer) error {
	r := &runner{
		doc:     doc,
		nodes:   map[string]*dom.Node{"body": doc.Body()},
		monitor: &event.Emitter{},
		watch:   watchList(doc, sc.Watch),
		out:     out,
	}
	defer r.monitor.Dispose()

	for i, step := range sc.Steps {
		if err := r.apply(step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}
	return nil
}

// watchList returns the lifecycle names followed by extra, without duplicates.
func watchList(doc *dom.Document, extra []string) []string {
	var out []string
	for _, name := range append([]string{doc.InsertedEvent(), doc.RemovedEvent(), doc.AttributesEvent()}, extra...) {
		if name != "" && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

func (r *runner) apply(s Step) error {
	switch s.Op {
	case "create":
		if s.Tag == "" {
			return errors.New("tag is required")
		}
		n := r.doc.CreateElement(s.Tag)
		if s.ID != "" {
			n.SetAttribute("id", s.ID)
		}
		return r.track(s.ID, n)
	case "text":
		return r.track(s.ID, r.doc.CreateTextNode(s.Text))
	case "append":
		return r.with(s.Parent, s.ID, func(parent, child *dom.Node) error {
			return parent.AppendChild(child)
		})
	case "insert":
		var ref *dom.Node
		if s.Before != "" {
			var err error
			if ref, err = r.node(s.Before); err != nil {
				return err
			}
		}
		return r.with(s.Parent, s.ID, func(parent, child *dom.Node) error {
			return parent.InsertBefore(child, ref)
		})
	case "fragment":
		parent, err := r.node(s.Parent)
		if err != nil {
			return err
		}
		frag := r.doc.CreateDocumentFragment()
		for _, id := range s.Children {
			child, err := r.node(id)
			if err != nil {
				return err
			}
			if err := frag.AppendChild(child); err != nil {
				return err
			}
		}
		return parent.AppendChild(frag)
	case "detach":
		n, err := r.node(s.ID)
		if err != nil {
			return err
		}
		if n.Parent() == nil {
			return nil
		}
		return n.Parent().RemoveChild(n)
	case "destroy":
		n, err := r.node(s.ID)
		if err != nil {
			return err
		}
		n.Destroy()
		delete(r.nodes, s.ID)
		return nil
	case "set", "unset":
		n, err := r.node(s.ID)
		if err != nil {
			return err
		}
		if s.Op == "set" {
			n.SetAttribute(s.Name, s.Value)
		} else {
			n.RemoveAttribute(s.Name)
		}
		return nil
	case "trigger":
		n, err := r.node(s.ID)
		if err != nil {
			return err
		}
		event.TriggerName(n, s.Event, s.Bubble)
		return nil
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
}

func (r *runner) track(id string, n *dom.Node) error {
	if id == "" {
		return errors.New("id is required")
	}
	if _, dup := r.nodes[id]; dup {
		return fmt.Errorf("duplicate id %q", id)
	}
	r.nodes[id] = n
	for _, name := range r.watch {
		r.monitor.ListenTo(n, name, event.Func(r.report))
	}
	return nil
}

func (r *runner) report(ev *event.Event, _ ...any) {
	target := fmt.Sprint(ev.Target)
	if ev.CurrentTarget != nil && ev.CurrentTarget != ev.Target {
		fmt.Fprintf(r.out, "%-10s %s (at %v)\n", ev.Type, target, ev.CurrentTarget)
		return
	}
	if name, ok := ev.Data["attributeName"]; ok {
		fmt.Fprintf(r.out, "%-10s %s %v (was %v)\n", ev.Type, target, name, ev.Data["oldValue"])
		return
	}
	fmt.Fprintf(r.out, "%-10s %s\n", ev.Type, target)
}

func (r *runner) node(id string) (*dom.Node, error) {
	n, ok := r.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", errUnknownNode, id)
	}
	return n, nil
}

func (r *runner) with(parentID, childID string, fn func(parent, child *dom.Node) error) error {
	parent, err := r.node(parentID)
	if err != nil {
		return err
	}
	child, err := r.node(childID)
	if err != nil {
		return err
	}
	return fn(parent, child)
}
