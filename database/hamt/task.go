// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package hamt

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/0xsoniclabs/tracy"
)

// task is a unit of work of a flush. Tasks form a tree mirroring the modified
// part of the trie: a task may only run after all its child tasks have
// completed, and it notifies its single parent task when done.
type task struct {
	action          func()       // < the action to perform
	numDependencies atomic.Int32 // < number of child tasks still to complete
	parentTask      *task        // < optional parent task to notify when done
}

func newTask(action func(), numDependencies int) *task {
	t := &task{action: action}
	t.numDependencies.Store(int32(numDependencies))
	return t
}

// run executes the task's action and returns the parent task if it became
// ready to run as a result.
func (t *task) run() *task {
	t.action()
	if t.parentTask == nil {
		return nil
	}
	if t.parentTask.numDependencies.Add(-1) != 0 {
		return nil
	}
	return t.parentTask
}

// sequentialTaskLimit is the number of tasks below which tasks are run by the
// calling goroutine.
const sequentialTaskLimit = 20

// runTasks executes the given tasks respecting their dependencies. The tasks
// must be listed in an order where every task follows all of its children.
func runTasks(tasks []*task) {
	if len(tasks) < sequentialTaskLimit {
		for _, task := range tasks {
			task.action()
		}
		return
	}

	// Leaf tasks seed the work list; parent tasks are run by whichever worker
	// completes their last child.
	workList := make([]*task, 0, len(tasks))
	for _, task := range tasks {
		if task.numDependencies.Load() == 0 {
			workList = append(workList, task)
		}
	}

	pos := atomic.Int32{}
	processTasks := func() {
		zone := tracy.ZoneBegin("hamt::flush_worker")
		defer zone.End()
		for {
			next := int(pos.Add(1) - 1)
			if next >= len(workList) {
				return
			}
			for task := workList[next]; task != nil; {
				task = task.run()
			}
		}
	}

	numWorkers := min(runtime.NumCPU(), 8)
	var wg sync.WaitGroup
	wg.Add(numWorkers - 1)
	for range numWorkers - 1 {
		go func() {
			defer wg.Done()
			processTasks()
		}()
	}
	processTasks()

	zone := tracy.ZoneBegin("hamt::flush_wait")
	wg.Wait()
	zone.End()
}
