package rod

// Test pages served over httptest. Element boxes use fixed geometry so that
// elementFromPoint lookups are deterministic in a 1000x1000 viewport.
const (
	BasicHTML = `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
	<h1>Hello World</h1>
</body>
</html>`

	CardHTML = `<!DOCTYPE html>
<html>
<body style="margin:0">
	<div id="main" class="card active"
		style="position:absolute;left:0;top:0;width:400px;height:200px">Hello</div>
	<button id="buy" class="btn primary"
		style="position:absolute;left:500px;top:500px;width:200px;height:100px">  Buy now  </button>
</body>
</html>`

	EmptyHTML = `<!DOCTYPE html>
<html style="display:none">
<body></body>
</html>`
)
