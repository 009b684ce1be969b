package handlers

import "html/template"

// Inline pages for the account-facing routes. The JSON item API is the real
// surface; these exist so the provider flow is usable from a browser.

var landingPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Welcome</title>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f9f9f9; margin: 0;
               display: flex; justify-content: center; align-items: center; height: 100vh; }
        .container { text-align: center; background: #ffffff; padding: 20px 30px;
                     border-radius: 10px; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); }
        h1 { color: #333; margin-bottom: 20px; }
        a { display: inline-block; background-color: #4285F4; color: white; text-decoration: none;
            padding: 10px 20px; border-radius: 5px; font-size: 16px; font-weight: bold; }
        a:hover { background-color: #357ae8; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Welcome</h1>
        <a href="/auth/provider">Login</a>
    </div>
</body>
</html>
`

var profilePage = template.Must(template.New("profile").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Profile</title>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f9f9f9; margin: 0;
               display: flex; justify-content: center; align-items: center; height: 100vh; }
        .container { text-align: center; background: #ffffff; padding: 20px 30px;
                     border-radius: 10px; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); }
        h1 { color: #333; margin-bottom: 20px; }
        a { display: inline-block; background-color: #f44336; color: white; text-decoration: none;
            padding: 10px 20px; border-radius: 5px; font-size: 16px; font-weight: bold; }
        a:hover { background-color: #d32f2f; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Hello, {{.DisplayName}} ({{.Email}})</h1>
        <a href="/logout">Logout</a>
    </div>
</body>
</html>
`))

var usersPage = template.Must(template.New("users").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>All Users</title>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f9f9f9; margin: 0;
               display: flex; justify-content: center; align-items: center; height: 100vh; }
        .container { text-align: center; background: #ffffff; padding: 20px 30px;
                     border-radius: 10px; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
                     max-width: 600px; width: 100%; overflow-y: auto; }
        h1 { color: #333; margin-bottom: 20px; }
        ul { list-style: none; padding: 0; }
        li { padding: 10px 0; border-bottom: 1px solid #ddd; }
    </style>
</head>
<body>
    <div class="container">
        <h1>All Registered Users</h1>
        <ul>
            {{range .}}<li>{{.DisplayName}} ({{.Email}})</li>{{end}}
        </ul>
        <a href="/profile">Back to Profile</a>
    </div>
</body>
</html>
`))
