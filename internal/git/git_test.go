package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const diff = `diff --git a/src/main.rs b/src/main.rs
index 3b18e51..a9d3c2e 100644
--- a/src/main.rs
+++ b/src/main.rs
@@ -1,0 +2,3 @@ fn main() {
+    let a = 1;
+    let b = 2;
+    let c = 3;
@@ -10 +13 @@ fn helper() {
-    old();
+    new();
@@ -20,2 +23,0 @@
-    gone();
-    gone();
diff --git a/old.py b/old.py
deleted file mode 100644
index e69de29..0000000
--- a/old.py
+++ /dev/null
@@ -1,2 +0,0 @@
-x = 1
-y = 2
diff --git a/lib/util.py b/lib/util.py
new file mode 100644
--- /dev/null
+++ b/lib/util.py
@@ -0,0 +1,2 @@
+def f():
+    pass
`

func TestParseDiff(t *testing.T) {
	files, err := parseDiff([]byte(diff))
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "src/main.rs", files[0].Path)
	assert.Equal(t, []int{2, 3, 4, 13}, files[0].ChangedLines)

	assert.Equal(t, "lib/util.py", files[1].Path)
	assert.Equal(t, []int{1, 2}, files[1].ChangedLines)

	lines := Lines(files)
	assert.Equal(t, []int{1, 2}, lines["lib/util.py"])
	assert.NotContains(t, lines, "old.py")
}

func TestParseDiff_Empty(t *testing.T) {
	files, err := parseDiff(nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}
