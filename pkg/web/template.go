package web

// chatTemplate is the whole UI: keeping it inline means the web image
// has no assets to ship.
const chatTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{ .Title }}</title>
    <style>
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: linear-gradient(135deg, #1a1a2e 0%, #16213e 100%);
            color: #eee;
            min-height: 100vh;
            display: flex;
            flex-direction: column;
        }
        .container {
            max-width: 900px;
            margin: 0 auto;
            padding: 20px;
            flex: 1;
            display: flex;
            flex-direction: column;
            width: 100%;
        }
        h1 { text-align: center; margin-bottom: 20px; color: #00d9ff; font-size: 2rem; }
        .chat-box {
            flex: 1;
            overflow-y: auto;
            border: 1px solid #333;
            border-radius: 12px;
            padding: 20px;
            margin-bottom: 15px;
            background: rgba(22, 33, 62, 0.8);
            min-height: 400px;
            max-height: 60vh;
        }
        .message { margin-bottom: 15px; padding: 12px 16px; border-radius: 12px; line-height: 1.5; }
        .message.user { background: linear-gradient(135deg, #0f3460 0%, #1a4a7a 100%); margin-left: 20%; }
        .message.assistant { background: rgba(26, 26, 46, 0.9); border: 1px solid #333; margin-right: 20%; }
        .role { font-size: 0.7rem; color: #888; margin-bottom: 6px; text-transform: uppercase; font-weight: 600; }
        .content { white-space: pre-wrap; word-wrap: break-word; }
        form { display: flex; gap: 10px; }
        input[type="text"] {
            flex: 1;
            padding: 14px 18px;
            border: 1px solid #333;
            border-radius: 12px;
            background: rgba(22, 33, 62, 0.9);
            color: #eee;
            font-size: 16px;
        }
        button {
            padding: 14px 28px;
            background: linear-gradient(135deg, #00d9ff 0%, #00b8d4 100%);
            color: #1a1a2e;
            border: none;
            border-radius: 12px;
            cursor: pointer;
            font-weight: 600;
            font-size: 15px;
        }
        .clear-btn { background: linear-gradient(135deg, #e94560 0%, #c73e54 100%); color: white; }
        .empty-state { text-align: center; color: #666; padding: 60px 20px; }
        .empty-state .icon { font-size: 3rem; margin-bottom: 15px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{ .Title }}</h1>

        <div class="chat-box" id="chat-box">
            {{ if .Messages }}
                {{ range .Messages }}
                <div class="message {{ .Role }}">
                    <div class="role">{{ .Role }}</div>
                    <div class="content">{{ .Content }}</div>
                </div>
                {{ end }}
            {{ else }}
                <div class="empty-state">
                    <div class="icon">&#128172;</div>
                    <p>Start a conversation by typing a message below!</p>
                </div>
            {{ end }}
        </div>

        <form method="post" action="/chat">
            <input type="text" name="message" placeholder="Type your message..." autofocus required autocomplete="off">
            <button type="submit">Send</button>
            <button type="submit" formaction="/clear" class="clear-btn">Clear</button>
        </form>
    </div>

    <script>
        const chatBox = document.getElementById('chat-box');
        chatBox.scrollTop = chatBox.scrollHeight;
    </script>
</body>
</html>
`
