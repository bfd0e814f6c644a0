/*
Package status owns every write repren makes to disk and records what
happened to each file.

	            +-------------+
	            |   Manager   |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           | Events  |
	| (backups) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Replaces file content atomically (temp sibling, sync, rename)
- Keeps a backup next to every rewritten file; the first backup wins
- Moves and restores files
- Tracks a FileInfo per processed path and summarizes the run

🔒 Write protocol:
 1. write the new bytes to a TempPrefix sibling and sync it
 2. write the original bytes to path+suffix unless that backup exists
 3. rename the temp file over path
 4. on any failure remove the temp file; path keeps its old bytes

🔍 Example:

	mgr := status.New(".orig", logger)

	content, perm, err := mgr.ReadFile(ctx, path)
	created, err := mgr.ReplaceFile(ctx, path, content, updated, perm)

	mgr.TrackFile(ctx, status.FileInfo{
		Path:          path,
		Status:        status.StatusModified,
		BackupCreated: created,
	})
*/
package status
