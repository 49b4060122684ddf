// Package scheduler drives exploration steps to exhaustion.
//
// With one worker the tree is walked by plain depth-first recursion. With
// more, each worker owns a stack of steps: it asks the top step for its next
// child, pushes and collects it, and pops the step once exhausted. A worker
// with an empty stack steals: it scans the other stacks from the bottom,
// where the shallow steps with the most work left sit, and asks one of them
// for a child without removing it from its owner. A worker retires when its
// stack is empty and no step anywhere yields a child.
//
// Patterns are collected as soon as their step is created. Statistics are
// kept per worker and merged once all workers are joined.
package scheduler
