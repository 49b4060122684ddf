// Package explore implements the unit of closed itemset enumeration.
//
// A Step holds a closed pattern, the dataset projected on it, and a cursor
// over candidate extensions. Step.Next advances the cursor until a candidate
// passes every Selector of the step's Chain and its projection confirms the
// step as the extension's first parent, then returns the child step. Next
// is safe for concurrent use, so a step can be drained by its owner and by
// thieves at the same time.
package explore
