package tool

import "fmt"

// Name identifies one of the fixed task operations a model may invoke.
type Name string

const (
	AddTask      Name = "add_task"
	ListTasks    Name = "list_tasks"
	CompleteTask Name = "complete_task"
	DeleteTask   Name = "delete_task"
	UpdateTask   Name = "update_task"
)

// Names lists every tool in catalogue order.
var Names = []Name{AddTask, ListTasks, CompleteTask, DeleteTask, UpdateTask}

// ParseName rejects any name outside the closed tool set.
func ParseName(s string) (Name, error) {
	for _, n := range Names {
		if string(n) == s {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown tool %q", s)
}
