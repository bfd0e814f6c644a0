/*
Package operation applies a compiled pattern set to walked files.

	+-------------+
	|  Operation  |
	| (Core Logic)|
	+------+------+
	       |
	+------+------+
	|   status    |
	| (File I/O)  |
	+------+------+

🎯 Operations:
  - transform: rewrite contents in place (with backup), then move the file
    to the path the same patterns produce for its root-relative path
  - undo: move every backup back over its original
  - clean: delete every backup

🔄 Flow per file:
 1. read the whole file through status.FileManager
 2. run the replacement engine in line or at-once mode
 3. on a match write a temp sibling, back up the original, promote the temp
 4. rewrite the relative path at once; on a collision append .1, .2, ...
    until the destination is neither on disk nor claimed by this run
 5. track one status.FileInfo

Files are handled one at a time. A failure is recorded for that file and
the run moves on; cancelling the context stops the run between files.

🔍 Example:

	op, err := operation.NewTransformOperation(operation.Options{
		Patterns: patterns,
		Mode:     operation.ModeFull,
		Files:    mgr,
		Status:   mgr,
	})
	err = operation.NewRunner(&logger).Run(ctx, op, entries)
*/
package operation
