package domain

// DefaultProjectFiles returns the starter file bundle for a fresh project.
func DefaultProjectFiles() ProjectFiles {
	return ProjectFiles{
		HTML: defaultHTML,
		CSS:  defaultCSS,
		JS:   defaultJS,
	}
}

// Resolve builds the file bundle for project creation: provided fields win,
// missing ones fall back to the default template.
func (fp FilesPatch) Resolve() ProjectFiles {
	files := DefaultProjectFiles()
	if fp.HTML != nil {
		files.HTML = *fp.HTML
	}
	if fp.CSS != nil {
		files.CSS = *fp.CSS
	}
	if fp.JS != nil {
		files.JS = *fp.JS
	}
	return files
}

const defaultHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Welcome to FanaPen</title>
</head>
<body>
  <div class="container">
    <div class="hero">
      <img src="/logo.webp" alt="FanaPen Logo" class="logo">
      <h1 class="title">Welcome to FanaPen</h1>
      <p class="subtitle">Your creative coding playground</p>
    </div>

    <div class="cta">
      <button class="btn-primary" onclick="startCoding()">Start Coding</button>
      <p class="tip">Edit the HTML, CSS, and JS files to customize this page!</p>
    </div>
  </div>
</body>
</html>`

const defaultCSS = `* {
  margin: 0;
  padding: 0;
  box-sizing: border-box;
}

body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
  background: linear-gradient(135deg, #1a1a1a 0%, #0d0d0d 100%);
  min-height: 100vh;
  display: flex;
  align-items: center;
  justify-content: center;
  padding: 20px;
  color: #ffffff;
}

.container {
  max-width: 900px;
  width: 100%;
}

.hero {
  text-align: center;
  margin-bottom: 60px;
}

.logo {
  width: 120px;
  height: 120px;
  border-radius: 24px;
  box-shadow: 0 20px 60px rgba(0, 0, 0, 0.5);
  margin-bottom: 30px;
}

.title {
  font-size: 3.5rem;
  font-weight: 800;
  margin-bottom: 16px;
  color: #ffffff;
}

.subtitle {
  font-size: 1.5rem;
  opacity: 0.7;
  font-weight: 300;
  color: #cccccc;
}

.cta {
  text-align: center;
}

.btn-primary {
  background: #ffffff;
  color: #000000;
  border: none;
  padding: 16px 48px;
  font-size: 1.2rem;
  font-weight: 600;
  border-radius: 50px;
  cursor: pointer;
  transition: all 0.3s ease;
  box-shadow: 0 10px 30px rgba(0, 0, 0, 0.3);
}

.btn-primary:hover {
  background: #f0f0f0;
  box-shadow: 0 15px 40px rgba(255, 255, 255, 0.1);
}

.btn-primary:active {
  transform: scale(0.98);
}

.tip {
  margin-top: 24px;
  opacity: 0.6;
  font-size: 0.95rem;
  color: #aaaaaa;
}

@media (max-width: 768px) {
  .title {
    font-size: 2.5rem;
  }

  .subtitle {
    font-size: 1.2rem;
  }
}`

const defaultJS = `console.log('Welcome to FanaPen!');

function startCoding() {
  const tip = document.querySelector('.tip');
  tip.textContent = 'Great! Now start editing the code to make it your own!';
  tip.style.fontSize = '1.1rem';
  tip.style.fontWeight = '600';
}`
