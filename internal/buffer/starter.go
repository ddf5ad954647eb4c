package buffer

const starterHTML = `<!-- HTML: add your markup here -->
<div class="card">
<h2>Hello from jsbin</h2>
<p>Edit HTML / CSS / JS and press Run</p>
</div>
`

const starterCSS = `/* CSS: styles here */
:root{ --accent: #1fb6ff; --bg:#0b0d10; --card:#0f1113; --muted:#98a0a6; --text:#e6eef3 }
body{font-family:system-ui,Segoe UI,Roboto,Arial;display:flex;align-items:center;justify-content:center;min-height:100vh;margin:0;background:linear-gradient(180deg,#071019,#0b0d10);color:var(--text)}
.card{padding:28px;border-radius:12px;background:linear-gradient(180deg, rgba(255,255,255,0.02), rgba(255,255,255,0.01));border:1px solid rgba(255,255,255,0.03)}
h2{margin:0 0 8px 0;color:var(--accent)}
p{margin:0;color:var(--muted)}`

const starterJS = `// JS: add interactivity
document.querySelectorAll('.card').forEach(c=>{
c.addEventListener('click', ()=> alert('Card clicked!'));
});`

// Starter returns the sample buffers new sessions open with.
func Starter() Buffers {
	return Buffers{HTML: starterHTML, CSS: starterCSS, JS: starterJS}
}
