package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhulik/invoker"
)

// Counter accumulates values.
type Counter struct {
	value int
}

func NewCounter(start int) *Counter {
	return &Counter{value: start}
}

func (c *Counter) Add(delta int) int {
	c.value += delta
	return c.value
}

func (c *Counter) Invoke(deltas ...int) int {
	for _, d := range deltas {
		c.Add(d)
	}
	return c.value
}

// Job is a unit of work identified by a generated id.
type Job struct{}

func newJob() *Job {
	return &Job{}
}

func scheduleJob(ctx context.Context, id uuid.UUID, at time.Time, name string, delay int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	at = at.Add(time.Duration(delay) * time.Second)

	return fmt.Sprintf("job %s '%s' scheduled at %s", id, name, at.Format(time.RFC3339)), nil
}

func sum(numbers ...int) int {
	total := 0
	for _, n := range numbers {
		total += n
	}
	return total
}

func greet(name string, greeting string) string {
	return greeting + ", " + name + "!"
}

func join(separator string, words ...string) string {
	return strings.Join(words, separator)
}

func divide(a, b int) (int, error) {
	if b == 0 {
		return 0, errors.New("division by zero")
	}
	return a / b, nil
}

// demoRegistry returns the functions and classes available from the command line.
func demoRegistry() (*invoker.Registry, error) {
	r := invoker.NewRegistry()

	functions := []struct {
		name   string
		fn     any
		params []invoker.ParamSpec
	}{
		{name: "sum", fn: sum, params: invoker.Params("numbers")},
		{name: "greet", fn: greet, params: []invoker.ParamSpec{
			invoker.Param("name"),
			invoker.Param("greeting", invoker.Default("Hello")),
		}},
		{name: "join", fn: join, params: []invoker.ParamSpec{
			invoker.Param("separator", invoker.Default(" ")),
			invoker.Param("words"),
		}},
		{name: "divide", fn: divide, params: invoker.Params("a", "b")},
	}

	for _, f := range functions {
		if err := r.Function(f.name, f.fn, f.params...); err != nil {
			return nil, err
		}
	}

	err := invoker.Class[Counter](r, "Counter",
		invoker.Constructor(NewCounter, invoker.Param("start", invoker.Default(0))),
		invoker.Method("Add", invoker.Param("delta")),
		invoker.Method("Invoke", invoker.Param("deltas")),
	)
	if err != nil {
		return nil, err
	}

	err = invoker.Class[Job](r, "Job",
		invoker.PrivateConstructor(newJob),
		invoker.Static("Schedule", scheduleJob,
			invoker.Param("ctx"),
			invoker.Param("id"),
			invoker.Param("at"),
			invoker.Param("name"),
			invoker.Param("delay", invoker.Default(0)),
		),
	)
	if err != nil {
		return nil, err
	}

	return r, nil
}
